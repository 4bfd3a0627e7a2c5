package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/billing"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/purchase"
	"go.uber.org/zap"
)

// How many suppliers the dashboard ranks by spend
const topSupplierLimit = 5

// Service assembles the back-office dashboard
type Service struct {
	purchaseRepo purchase.Repository
	billRepo     billing.BillRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewService creates a new report Service
func NewService(
	purchaseRepo purchase.Repository,
	billRepo billing.BillRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		billRepo:     billRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Dashboard builds the summary for the given window. A zero window
// defaults to the last six months.
func (s *Service) Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error) {
	from, to := req.From, req.To
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, -6, 0)
	}

	monthly, err := s.purchaseRepo.SummarizeByMonth(ctx, from, to)
	if err != nil {
		return nil, err
	}

	topSuppliers, err := s.purchaseRepo.TopSuppliersBySpend(ctx, from, to, topSupplierLimit)
	if err != nil {
		return nil, err
	}

	outstanding, err := s.billRepo.SummarizeOutstandingByCaterer(ctx)
	if err != nil {
		return nil, err
	}
	totalOutstanding := decimal.Zero
	for _, due := range outstanding {
		totalOutstanding = totalOutstanding.Add(due.Outstanding)
	}

	dueSoonCount, err := s.countDueSoon(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	lowStockProducts := make([]LowStockProduct, len(lowStock))
	for i := range lowStock {
		p := &lowStock[i]
		lowStockProducts[i] = LowStockProduct{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			BaseUnit:    string(p.BaseUnit),
			StockOnHand: p.StockOnHand,
			MinStock:    p.MinStock,
		}
	}

	return &DashboardResponse{
		From:             from,
		To:               to,
		MonthlyPurchases: monthly,
		TopSuppliers:     topSuppliers,
		OutstandingBills: outstanding,
		TotalOutstanding: totalOutstanding,
		DueSoonCount:     dueSoonCount,
		LowStockProducts: lowStockProducts,
	}, nil
}

func (s *Service) countDueSoon(ctx context.Context) (int, error) {
	now := time.Now()
	bills, err := s.billRepo.FindDueBetween(ctx, now, now.AddDate(0, 0, billing.DueSoonWindowDays))
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range bills {
		if bills[i].IsDueSoon(now) {
			count++
		}
	}
	return count, nil
}
