package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/purchase"
	"github.com/spicetrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements purchase.Repository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase with its items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	var p purchase.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByBillNumber finds a purchase by its bill number
func (r *GormPurchaseRepository) FindByBillNumber(ctx context.Context, billNumber string) (*purchase.Purchase, error) {
	var p purchase.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("bill_number = ?", billNumber).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds all purchases matching the filter
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.Purchase, error) {
	var purchases []purchase.Purchase
	query := r.applyFilter(r.db.WithContext(ctx).Model(&purchase.Purchase{}), filter)
	query = applyOrder(paginate(query, filter), filter, "created_at DESC")

	if err := query.Preload("Items").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// FindBySupplier finds purchases from one supplier
func (r *GormPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchase.Purchase, error) {
	var purchases []purchase.Purchase
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&purchase.Purchase{}).Where("supplier_id = ?", supplierID),
		filter,
	)
	query = applyOrder(paginate(query, filter), filter, "created_at DESC")

	if err := query.Preload("Items").Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Count counts purchases matching the filter
func (r *GormPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&purchase.Purchase{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase with its items
func (r *GormPurchaseRepository) Save(ctx context.Context, p *purchase.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		// Remove lines deleted from the aggregate
		itemIDs := make([]uuid.UUID, len(p.Items))
		for i, item := range p.Items {
			itemIDs[i] = item.ID
		}
		query := tx.Where("purchase_id = ?", p.ID)
		if len(itemIDs) > 0 {
			query = query.Where("id NOT IN ?", itemIDs)
		}
		return query.Delete(&purchase.LineItem{}).Error
	})
}

// Delete deletes a purchase and its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&purchase.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByBillNumber checks if a purchase with the given bill number exists
func (r *GormPurchaseRepository) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("bill_number = ?", billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateBillNumber generates the next bill number.
// Format: PO-YYYY-NNNN (e.g. PO-2026-0001)
func (r *GormPurchaseRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("PO-%d-", year)

	var last purchase.Purchase
	err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("bill_number LIKE ?", prefix+"%").
		Order("bill_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.BillNumber != "" {
		parts := strings.Split(last.BillNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, nextNum), nil
}

// SummarizeByMonth aggregates submitted and received purchases per month
func (r *GormPurchaseRepository) SummarizeByMonth(ctx context.Context, from, to time.Time) ([]purchase.MonthlySummary, error) {
	var summaries []purchase.MonthlySummary
	err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Select(`EXTRACT(YEAR FROM purchase_date)::int AS year,
			EXTRACT(MONTH FROM purchase_date)::int AS month,
			COUNT(*) AS purchase_count,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(SUM(total_gst_amount), 0) AS total_gst_amount,
			COALESCE(SUM(grand_total), 0) AS grand_total`).
		Where("purchase_date >= ? AND purchase_date <= ? AND status IN ?",
			from, to, []string{string(purchase.PurchaseStatusSubmitted), string(purchase.PurchaseStatusReceived)}).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// TopSuppliersBySpend ranks suppliers by grand total over the window
func (r *GormPurchaseRepository) TopSuppliersBySpend(ctx context.Context, from, to time.Time, limit int) ([]purchase.SupplierSpend, error) {
	var spends []purchase.SupplierSpend
	err := r.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Select(`supplier_id,
			supplier_name,
			COUNT(*) AS purchase_count,
			COALESCE(SUM(grand_total), 0) AS grand_total`).
		Where("purchase_date >= ? AND purchase_date <= ? AND status IN ?",
			from, to, []string{string(purchase.PurchaseStatusSubmitted), string(purchase.PurchaseStatusReceived)}).
		Group("supplier_id, supplier_name").
		Order("grand_total DESC").
		Limit(limit).
		Scan(&spends).Error
	if err != nil {
		return nil, err
	}
	return spends, nil
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchAny(query, filter.Search, "bill_number", "supplier_name")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "start_date":
			query = query.Where("purchase_date >= ?", value)
		case "end_date":
			query = query.Where("purchase_date <= ?", value)
		}
	}
	return query
}

// Ensure GormPurchaseRepository implements Repository
var _ purchase.Repository = (*GormPurchaseRepository)(nil)
