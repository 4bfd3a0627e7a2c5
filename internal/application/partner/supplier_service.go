package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier management operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name, partner.SupplierType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := supplier.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != "" {
		if err := supplier.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.CreditDays != nil || req.CreditLimit != nil {
		days := 0
		if req.CreditDays != nil {
			days = *req.CreditDays
		}
		limit := decimal.Zero
		if req.CreditLimit != nil {
			limit = *req.CreditLimit
		}
		if err := supplier.SetPaymentTerms(days, limit); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created", zap.String("code", supplier.Code), zap.String("name", supplier.Name))

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SupplierResponse], error) {
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

	suppliers, err := s.supplierRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		items[i] = ToSupplierResponse(&suppliers[i])
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Update updates a supplier's details. Only the provided fields change.
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shortName := supplier.ShortName
		if req.ShortName != nil {
			shortName = *req.ShortName
		}
		if err := supplier.Update(*req.Name, shortName); err != nil {
			return nil, err
		}
	} else if req.ShortName != nil {
		if err := supplier.Update(supplier.Name, *req.ShortName); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := supplier.ContactName
		phone := supplier.Phone
		email := supplier.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := supplier.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.GSTIN != nil {
		if err := supplier.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// SetPaymentTerms updates a supplier's credit days and limit
func (s *SupplierService) SetPaymentTerms(ctx context.Context, id uuid.UUID, creditDays int, creditLimit decimal.Decimal) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := supplier.SetPaymentTerms(creditDays, creditLimit); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Activate activates a supplier
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Supplier).Activate)
}

// Deactivate deactivates a supplier
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Supplier).Deactivate)
}

// Block blocks a supplier
func (s *SupplierService) Block(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Supplier).Block)
}

// Delete removes a supplier with no outstanding balance
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier.Balance.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("HAS_BALANCE", "Cannot delete a supplier with an outstanding balance")
	}
	return s.supplierRepo.Delete(ctx, id)
}

func (s *SupplierService) changeStatus(ctx context.Context, id uuid.UUID, change func(*partner.Supplier) error) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(supplier); err != nil {
		return err
	}
	return s.supplierRepo.Save(ctx, supplier)
}
