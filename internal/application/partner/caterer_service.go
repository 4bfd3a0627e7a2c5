package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatererService handles caterer account management operations
type CatererService struct {
	catererRepo partner.CatererRepository
	logger      *zap.Logger
}

// NewCatererService creates a new CatererService
func NewCatererService(catererRepo partner.CatererRepository, logger *zap.Logger) *CatererService {
	return &CatererService{
		catererRepo: catererRepo,
		logger:      logger,
	}
}

// Create creates a new caterer account
func (s *CatererService) Create(ctx context.Context, req CreateCatererRequest) (*CatererResponse, error) {
	exists, err := s.catererRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A caterer with this code already exists")
	}

	caterer, err := partner.NewCaterer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := caterer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.GSTIN != "" {
		if err := caterer.SetGSTIN(req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.DeliveryAddress != "" || req.City != "" {
		if err := caterer.SetDeliveryAddress(req.DeliveryAddress, req.City); err != nil {
			return nil, err
		}
	}
	if req.CreditDays != nil {
		if err := caterer.SetCreditDays(*req.CreditDays); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		caterer.SetNotes(req.Notes)
	}

	if err := s.catererRepo.Save(ctx, caterer); err != nil {
		return nil, err
	}

	s.logger.Info("caterer created", zap.String("code", caterer.Code), zap.String("name", caterer.Name))

	response := ToCatererResponse(caterer)
	return &response, nil
}

// GetByID retrieves a caterer by ID
func (s *CatererService) GetByID(ctx context.Context, id uuid.UUID) (*CatererResponse, error) {
	caterer, err := s.catererRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCatererResponse(caterer)
	return &response, nil
}

// List retrieves caterers with pagination
func (s *CatererService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[CatererResponse], error) {
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

	caterers, err := s.catererRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.catererRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]CatererResponse, len(caterers))
	for i := range caterers {
		items[i] = ToCatererResponse(&caterers[i])
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// Update updates a caterer's details. Only the provided fields change.
func (s *CatererService) Update(ctx context.Context, id uuid.UUID, req UpdateCatererRequest) (*CatererResponse, error) {
	caterer, err := s.catererRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := caterer.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := caterer.ContactName
		phone := caterer.Phone
		email := caterer.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := caterer.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.DeliveryAddress != nil || req.City != nil {
		address := caterer.DeliveryAddress
		city := caterer.City
		if req.DeliveryAddress != nil {
			address = *req.DeliveryAddress
		}
		if req.City != nil {
			city = *req.City
		}
		if err := caterer.SetDeliveryAddress(address, city); err != nil {
			return nil, err
		}
	}

	if req.GSTIN != nil {
		if err := caterer.SetGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.CreditDays != nil {
		if err := caterer.SetCreditDays(*req.CreditDays); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		caterer.SetNotes(*req.Notes)
	}

	if err := s.catererRepo.Save(ctx, caterer); err != nil {
		return nil, err
	}

	response := ToCatererResponse(caterer)
	return &response, nil
}

// Activate activates a caterer account
func (s *CatererService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Caterer).Activate)
}

// Deactivate deactivates a caterer account
func (s *CatererService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Caterer).Deactivate)
}

// Suspend suspends a caterer account over unpaid bills
func (s *CatererService) Suspend(ctx context.Context, id uuid.UUID) error {
	return s.changeStatus(ctx, id, (*partner.Caterer).Suspend)
}

// Delete removes a caterer with no outstanding balance
func (s *CatererService) Delete(ctx context.Context, id uuid.UUID) error {
	caterer, err := s.catererRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if caterer.HasBalance() {
		return shared.NewDomainError("HAS_BALANCE", "Cannot delete a caterer with unpaid bills")
	}
	return s.catererRepo.Delete(ctx, id)
}

func (s *CatererService) changeStatus(ctx context.Context, id uuid.UUID, change func(*partner.Caterer) error) error {
	caterer, err := s.catererRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := change(caterer); err != nil {
		return err
	}
	return s.catererRepo.Save(ctx, caterer)
}
