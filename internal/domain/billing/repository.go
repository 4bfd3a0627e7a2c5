package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// CatererDue is one caterer's aggregate outstanding position
type CatererDue struct {
	CatererID   uuid.UUID       `json:"caterer_id"`
	CatererName string          `json:"caterer_name"`
	BillCount   int64           `json:"bill_count"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// BillRepository defines persistence operations for caterer bills
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CatererBill, error)
	FindByBillNumber(ctx context.Context, billNumber string) (*CatererBill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CatererBill, error)
	FindByCaterer(ctx context.Context, catererID uuid.UUID, filter shared.Filter) ([]CatererBill, error)
	FindOutstanding(ctx context.Context) ([]CatererBill, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]CatererBill, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, bill *CatererBill) error
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateBillNumber(ctx context.Context) (string, error)
	SummarizeOutstandingByCaterer(ctx context.Context) ([]CatererDue, error)
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByBill(ctx context.Context, billID uuid.UUID) ([]Payment, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
}
