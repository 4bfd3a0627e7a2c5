package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/billing"
	"github.com/spicetrade/backend/internal/domain/purchase"
)

// DashboardRequest bounds the reporting window
type DashboardRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// LowStockProduct is a product at or below its stock alert level
type LowStockProduct struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	BaseUnit    string          `json:"base_unit"`
	StockOnHand decimal.Decimal `json:"stock_on_hand"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// DashboardResponse is the back-office landing page summary
type DashboardResponse struct {
	From             time.Time                 `json:"from"`
	To               time.Time                 `json:"to"`
	MonthlyPurchases []purchase.MonthlySummary `json:"monthly_purchases"`
	TopSuppliers     []purchase.SupplierSpend  `json:"top_suppliers"`
	OutstandingBills []billing.CatererDue      `json:"outstanding_bills"`
	TotalOutstanding decimal.Decimal           `json:"total_outstanding"`
	DueSoonCount     int                       `json:"due_soon_count"`
	LowStockProducts []LowStockProduct         `json:"low_stock_products"`
}
