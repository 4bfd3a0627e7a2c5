package storefront

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/order"
	"github.com/spicetrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles the public showcase and the orders placed from it
type Service struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	batchRepo   catalog.StockBatchRepository
	logger      *zap.Logger
}

// NewService creates a new storefront Service
func NewService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	batchRepo catalog.StockBatchRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		batchRepo:   batchRepo,
		logger:      logger,
	}
}

// ListShowcase retrieves the products visible on the public storefront
func (s *Service) ListShowcase(ctx context.Context) ([]ShowcaseProductResponse, error) {
	products, err := s.productRepo.FindShowcased(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ShowcaseProductResponse, len(products))
	for i := range products {
		responses[i] = ToShowcaseProductResponse(&products[i])
	}
	return responses, nil
}

// PlaceOrder creates an order from the public showcase. Quantities are in
// each product's base unit and rates come from the current selling price.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(orderNumber, req.CustomerName, req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Showcased {
			return nil, shared.NewDomainError("NOT_SHOWCASED", "Product is not available for ordering")
		}
		if err := o.AddItem(product.ID, product.Name, input.Quantity, product.BaseUnit, product.SellingPrice); err != nil {
			return nil, err
		}
	}

	if len(o.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order has no items")
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("customer", o.CustomerName),
		zap.Int("items", len(o.Items)))

	response := ToOrderResponse(o)
	return &response, nil
}

// GetOrder retrieves an order by ID
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListOrders retrieves orders with pagination for the back office
func (s *Service) ListOrders(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = ToOrderResponse(&orders[i])
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// ConfirmOrder accepts an order
func (s *Service) ConfirmOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Confirm(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// FulfillOrder marks an order's goods as handed over and deducts the
// sold quantities from stock, consuming the oldest batches first.
func (s *Service) FulfillOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Fulfill(); err != nil {
		return nil, err
	}

	for _, item := range o.Items {
		if err := s.deductStock(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("order fulfilled", zap.String("order_number", o.OrderNumber))

	response := ToOrderResponse(o)
	return &response, nil
}

// CancelOrder voids an order
func (s *Service) CancelOrder(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// deductStock removes a fulfilled line's quantity from the product and
// its batches, oldest first.
func (s *Service) deductStock(ctx context.Context, item order.OrderItem) error {
	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if err := product.DeductStock(item.Quantity, item.Unit); err != nil {
		return err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	batches, err := s.batchRepo.FindAvailableByProduct(ctx, item.ProductID)
	if err != nil {
		return err
	}

	remaining := item.Quantity
	var touched []*catalog.StockBatch
	for i := range batches {
		if !remaining.IsPositive() {
			break
		}
		batch := &batches[i]
		take := remaining
		if batch.Remaining.LessThan(take) {
			take = batch.Remaining
		}
		if err := batch.Consume(take); err != nil {
			return err
		}
		remaining = remaining.Sub(take)
		touched = append(touched, batch)
	}

	if len(touched) > 0 {
		if err := s.batchRepo.SaveAll(ctx, touched); err != nil {
			return err
		}
	}
	return nil
}
