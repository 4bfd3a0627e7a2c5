package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/billing"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles caterer billing operations
type Service struct {
	billRepo    billing.BillRepository
	paymentRepo billing.PaymentRepository
	catererRepo partner.CatererRepository
	logger      *zap.Logger
}

// NewService creates a new billing Service
func NewService(
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRepository,
	catererRepo partner.CatererRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		catererRepo: catererRepo,
		logger:      logger,
	}
}

// CreateBill raises a new bill against a caterer and adds the bill
// total to the caterer's outstanding balance
func (s *Service) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	caterer, err := s.catererRepo.FindByID(ctx, req.CatererID)
	if err != nil {
		return nil, err
	}
	if !caterer.IsActive() {
		return nil, shared.NewDomainError("CATERER_INACTIVE", "Caterer account is not active")
	}

	billNumber, err := s.billRepo.GenerateBillNumber(ctx)
	if err != nil {
		return nil, err
	}

	billDate := time.Now()
	if req.BillDate != nil {
		billDate = *req.BillDate
	}
	dueDate := billDate.AddDate(0, 0, caterer.CreditDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	bill, err := billing.NewCatererBill(billNumber, caterer.ID, caterer.Name, billDate, dueDate)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		unit, err := valueobject.ParseUnitCode(input.Unit)
		if err != nil {
			return nil, err
		}
		if _, err := bill.AddItem(input.ProductID, input.Description, input.Quantity, unit, input.Rate); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		bill.SetNotes(req.Notes)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	if err := caterer.AddBalance(bill.TotalAmount); err != nil {
		return nil, err
	}
	if err := s.catererRepo.Save(ctx, caterer); err != nil {
		return nil, err
	}

	s.logger.Info("bill raised",
		zap.String("bill_number", bill.BillNumber),
		zap.String("caterer", bill.CatererName),
		zap.String("total", bill.TotalAmount.StringFixed(2)),
	)

	response := ToBillResponse(bill, time.Now())
	return &response, nil
}

// GetByID retrieves a bill by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill, time.Now())
	return &response, nil
}

// List retrieves bills with pagination
func (s *Service) List(ctx context.Context, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
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
	if filter.CatererID != nil {
		repoFilter.Filters["caterer_id"] = *filter.CatererID
	}

	bills, err := s.billRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]BillResponse, len(bills))
	for i := range bills {
		items[i] = ToBillResponse(&bills[i], now)
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// RecordPayment applies a payment to a bill and reduces the caterer's
// outstanding balance
func (s *Service) RecordPayment(ctx context.Context, billID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	payment, err := bill.RecordPayment(req.Amount, billing.PaymentMethod(req.Method), req.Reference, paidAt)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	caterer, err := s.catererRepo.FindByID(ctx, bill.CatererID)
	if err != nil {
		return nil, err
	}
	if err := caterer.DeductBalance(payment.Amount); err != nil {
		return nil, err
	}
	if err := s.catererRepo.Save(ctx, caterer); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("bill_number", bill.BillNumber),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("method", string(payment.Method)),
	)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListPayments retrieves all payments against a bill
func (s *Service) ListPayments(ctx context.Context, billID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

// CancelBill voids an unpaid bill and releases the caterer's balance
func (s *Service) CancelBill(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.Cancel(); err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	if bill.TotalAmount.IsPositive() {
		caterer, err := s.catererRepo.FindByID(ctx, bill.CatererID)
		if err != nil {
			return nil, err
		}
		if err := caterer.DeductBalance(bill.TotalAmount); err != nil {
			return nil, err
		}
		if err := s.catererRepo.Save(ctx, caterer); err != nil {
			return nil, err
		}
	}

	response := ToBillResponse(bill, time.Now())
	return &response, nil
}

// ExtendDueDate moves a bill's due date forward
func (s *Service) ExtendDueDate(ctx context.Context, billID uuid.UUID, req ExtendDueDateRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.ExtendDueDate(req.DueDate); err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill, time.Now())
	return &response, nil
}

// OutstandingByCaterer summarizes outstanding amounts per caterer
func (s *Service) OutstandingByCaterer(ctx context.Context) ([]billing.CatererDue, error) {
	return s.billRepo.SummarizeOutstandingByCaterer(ctx)
}
