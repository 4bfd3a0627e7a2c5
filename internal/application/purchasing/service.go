package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/purchase"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles purchase invoice business operations
type Service struct {
	purchaseRepo purchase.Repository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	batchRepo    catalog.StockBatchRepository
	defaultGST   decimal.Decimal
	logger       *zap.Logger
}

// NewService creates a new purchasing Service
func NewService(
	purchaseRepo purchase.Repository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	batchRepo catalog.StockBatchRepository,
	defaultGST decimal.Decimal,
	logger *zap.Logger,
) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		batchRepo:    batchRepo,
		defaultGST:   defaultGST,
		logger:       logger,
	}
}

// Create creates a new draft purchase invoice. Incomplete lines are
// accepted; they simply do not count toward the totals until named.
func (s *Service) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier.IsBlocked() {
		return nil, shared.NewDomainError("SUPPLIER_BLOCKED", "Supplier is blocked")
	}

	billNumber, err := s.purchaseRepo.GenerateBillNumber(ctx)
	if err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	p, err := purchase.NewPurchase(billNumber, supplier.ID, supplier.Name, purchaseDate)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		if _, err := s.addItemFromInput(p, input.ProductID, input.ItemName, input.Quantity, input.Unit, input.Rate, input.GSTPercentage); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		p.SetNotes(req.Notes)
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("bill_number", p.BillNumber),
		zap.String("supplier", p.SupplierName),
		zap.String("grand_total", p.GrandTotal.StringFixed(2)),
	)

	response := ToPurchaseResponse(p)
	return &response, nil
}

// GetByID retrieves a purchase invoice by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(p)
	return &response, nil
}

// GetByBillNumber retrieves a purchase invoice by bill number
func (s *Service) GetByBillNumber(ctx context.Context, billNumber string) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByBillNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(p)
	return &response, nil
}

// List retrieves purchase invoices with pagination
func (s *Service) List(ctx context.Context, filter PurchaseListFilter) (*shared.Paginated[PurchaseListItemResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Status != nil {
		repoFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.SupplierID != nil {
		repoFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.StartDate != nil {
		repoFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		repoFilter.Filters["end_date"] = *filter.EndDate
	}

	purchases, err := s.purchaseRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseListItemResponse, len(purchases))
	for i := range purchases {
		items[i] = ToPurchaseListItemResponse(&purchases[i])
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// AddItem adds a line to a draft purchase
func (s *Service) AddItem(ctx context.Context, purchaseID uuid.UUID, req AddPurchaseItemRequest) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.addItemFromInput(p, req.ProductID, req.ItemName, req.Quantity, req.Unit, req.Rate, req.GSTPercentage); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// UpdateItem updates a draft line. Only the provided fields change;
// each one re-derives the line and invoice amounts.
func (s *Service) UpdateItem(ctx context.Context, purchaseID, itemID uuid.UUID, req UpdatePurchaseItemRequest) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	item := p.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
	}

	quantity := item.Quantity
	rate := item.Rate
	gst := item.GSTPercentage
	if req.Quantity != nil {
		quantity = purchase.ParseAmount(*req.Quantity)
	}
	if req.Rate != nil {
		rate = purchase.ParseAmount(*req.Rate)
	}
	if req.GSTPercentage != nil {
		gst = purchase.ParseAmount(*req.GSTPercentage)
	}

	if err := p.UpdateItem(itemID, quantity, rate, gst); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// ChangeItemUnit converts a line's quantity to a different unit of the
// same measurement family
func (s *Service) ChangeItemUnit(ctx context.Context, purchaseID, itemID uuid.UUID, req ChangeItemUnitRequest) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	unit, err := valueobject.ParseUnitCode(req.Unit)
	if err != nil {
		return nil, err
	}

	if err := p.ChangeItemUnit(itemID, unit); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// RemoveItem removes a line from a draft purchase
func (s *Service) RemoveItem(ctx context.Context, purchaseID, itemID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// Submit validates and submits a draft purchase. On any validation
// failure nothing is persisted and the draft survives untouched.
func (s *Service) Submit(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := p.Submit(); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("purchase submitted",
		zap.String("bill_number", p.BillNumber),
		zap.String("grand_total", p.GrandTotal.StringFixed(2)),
	)

	response := ToPurchaseResponse(p)
	return &response, nil
}

// Receive marks a submitted purchase as received. Catalogued lines
// create stock batches in each product's base unit and raise the
// supplier's payable balance by the invoice grand total.
func (s *Service) Receive(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := p.MarkReceived(); err != nil {
		return nil, err
	}

	batches, err := s.buildBatches(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	if len(batches) > 0 {
		if err := s.batchRepo.SaveAll(ctx, batches); err != nil {
			return nil, err
		}
	}

	supplier, err := s.supplierRepo.FindByID(ctx, p.SupplierID)
	if err != nil {
		return nil, err
	}
	if p.GrandTotal.IsPositive() {
		if err := supplier.AddBalance(p.GrandTotal); err != nil {
			return nil, err
		}
		if err := s.supplierRepo.Save(ctx, supplier); err != nil {
			return nil, err
		}
	}

	s.logger.Info("purchase received",
		zap.String("bill_number", p.BillNumber),
		zap.Int("batches", len(batches)),
	)

	response := ToPurchaseResponse(p)
	return &response, nil
}

// Cancel cancels a purchase with a reason
func (s *Service) Cancel(ctx context.Context, purchaseID uuid.UUID, req CancelPurchaseRequest) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := p.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(p)
	return &response, nil
}

// Delete removes a draft purchase entirely
func (s *Service) Delete(ctx context.Context, purchaseID uuid.UUID) error {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if !p.IsDraft() {
		return shared.NewDomainError("INVALID_STATUS", "Only draft purchases can be deleted")
	}
	return s.purchaseRepo.Delete(ctx, purchaseID)
}

// PreviewLine derives line amounts from raw form text without touching
// any stored state. Used by the entry form while the user types.
func (s *Service) PreviewLine(req PreviewLineRequest) PreviewLineResponse {
	gst := s.defaultGST
	if req.GSTPercentage != nil {
		gst = purchase.ParseAmount(*req.GSTPercentage)
	}
	amounts := purchase.ComputeLineAmounts(purchase.ParseAmount(req.Quantity), purchase.ParseAmount(req.Rate), gst)
	return PreviewLineResponse{
		GSTAmount: amounts.GSTAmount,
		Amount:    amounts.Amount,
	}
}

func (s *Service) addItemFromInput(p *purchase.Purchase, productID *uuid.UUID, itemName, quantity, unit, rate string, gstPercentage *string) (*purchase.LineItem, error) {
	unitCode, err := valueobject.ParseUnitCode(unit)
	if err != nil {
		return nil, err
	}

	gst := s.defaultGST
	if gstPercentage != nil {
		gst = purchase.ParseAmount(*gstPercentage)
	}

	return p.AddItem(productID, itemName, purchase.ParseAmount(quantity), unitCode, purchase.ParseAmount(rate), gst)
}

// buildBatches converts each catalogued invoice line into a stock batch
// in the product's base unit, updating the product's stock on hand.
func (s *Service) buildBatches(ctx context.Context, p *purchase.Purchase) ([]*catalog.StockBatch, error) {
	var batches []*catalog.StockBatch
	seq := 0
	for i := range p.Items {
		item := &p.Items[i]
		if item.ProductID == nil || !item.Qualifies() {
			continue
		}

		product, err := s.productRepo.FindByID(ctx, *item.ProductID)
		if err != nil {
			return nil, err
		}

		baseQty, err := valueobject.ConvertUnit(item.Quantity, item.Unit, product.BaseUnit)
		if err != nil {
			return nil, shared.NewDomainError("INCOMPATIBLE_UNITS",
				fmt.Sprintf("Cannot convert %s from %s to %s", item.ItemName, item.Unit, product.BaseUnit))
		}
		if !baseQty.IsPositive() {
			continue
		}

		costPerBase := decimal.Zero
		if !item.Quantity.IsZero() {
			costPerBase = item.PreTaxAmount().Div(baseQty).Round(4)
		}

		seq++
		batch, err := catalog.NewStockBatch(product.ID,
			fmt.Sprintf("%s-%d", p.BillNumber, seq), baseQty, product.BaseUnit, costPerBase)
		if err != nil {
			return nil, err
		}
		batch.LinkPurchase(p.ID)
		batches = append(batches, batch)

		if err := product.ReceiveStock(item.Quantity, item.Unit); err != nil {
			return nil, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}
	return batches, nil
}
