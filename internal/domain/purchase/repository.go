package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// MonthlySummary is one month's worth of purchase totals for dashboards
type MonthlySummary struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	PurchaseCount  int64           `json:"purchase_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TotalGSTAmount decimal.Decimal `json:"total_gst_amount"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// SupplierSpend is the aggregate spend against one supplier
type SupplierSpend struct {
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	PurchaseCount int64           `json:"purchase_count"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Repository defines persistence operations for purchase invoices
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByBillNumber(ctx context.Context, billNumber string) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error)
	GenerateBillNumber(ctx context.Context) (string, error)
	SummarizeByMonth(ctx context.Context, from, to time.Time) ([]MonthlySummary, error)
	TopSuppliersBySpend(ctx context.Context, from, to time.Time, limit int) ([]SupplierSpend, error)
}
