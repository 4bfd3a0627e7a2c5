package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/billing"
	"github.com/spicetrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a caterer bill with its items
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CatererBill, error) {
	var bill billing.CatererBill
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindByBillNumber finds a caterer bill by its bill number
func (r *GormBillRepository) FindByBillNumber(ctx context.Context, billNumber string) (*billing.CatererBill, error) {
	var bill billing.CatererBill
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("bill_number = ?", billNumber).
		First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// FindAll finds all caterer bills matching the filter
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CatererBill, error) {
	var bills []billing.CatererBill
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.CatererBill{}), filter)
	query = applyOrder(paginate(query, filter), filter, "bill_date DESC")

	if err := query.Preload("Items").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindByCaterer finds bills issued to one caterer
func (r *GormBillRepository) FindByCaterer(ctx context.Context, catererID uuid.UUID, filter shared.Filter) ([]billing.CatererBill, error) {
	var bills []billing.CatererBill
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.CatererBill{}).Where("caterer_id = ?", catererID),
		filter,
	)
	query = applyOrder(paginate(query, filter), filter, "bill_date DESC")

	if err := query.Preload("Items").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindOutstanding finds bills that still carry unpaid amounts
func (r *GormBillRepository) FindOutstanding(ctx context.Context) ([]billing.CatererBill, error) {
	var bills []billing.CatererBill
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(billing.BillStatusUnpaid),
			string(billing.BillStatusPartiallyPaid),
		}).
		Order("due_date ASC").
		Preload("Items").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// FindDueBetween finds open bills whose due date falls in the window
func (r *GormBillRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]billing.CatererBill, error) {
	var bills []billing.CatererBill
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date >= ? AND due_date <= ?",
			[]string{string(billing.BillStatusUnpaid), string(billing.BillStatusPartiallyPaid)},
			from, to).
		Order("due_date ASC").
		Preload("Items").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.CatererBill{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a caterer bill with its items
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.CatererBill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(bill).Error; err != nil {
			return err
		}
		// Remove lines deleted from the aggregate
		itemIDs := make([]uuid.UUID, len(bill.Items))
		for i, item := range bill.Items {
			itemIDs[i] = item.ID
		}
		query := tx.Where("bill_id = ?", bill.ID)
		if len(itemIDs) > 0 {
			query = query.Where("id NOT IN ?", itemIDs)
		}
		return query.Delete(&billing.BillItem{}).Error
	})
}

// Delete deletes a caterer bill and its items
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.CatererBill{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateBillNumber generates the next caterer bill number.
// Format: CB-YYYY-NNNN (e.g. CB-2026-0001)
func (r *GormBillRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("CB-%d-", year)

	var last billing.CatererBill
	err := r.db.WithContext(ctx).
		Model(&billing.CatererBill{}).
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

// SummarizeOutstandingByCaterer aggregates open balances per caterer
func (r *GormBillRepository) SummarizeOutstandingByCaterer(ctx context.Context) ([]billing.CatererDue, error) {
	var dues []billing.CatererDue
	err := r.db.WithContext(ctx).
		Model(&billing.CatererBill{}).
		Select(`caterer_id,
			caterer_name,
			COUNT(*) AS bill_count,
			COALESCE(SUM(total_amount - paid_amount), 0) AS outstanding`).
		Where("status IN ?", []string{
			string(billing.BillStatusUnpaid),
			string(billing.BillStatusPartiallyPaid),
		}).
		Group("caterer_id, caterer_name").
		Order("outstanding DESC").
		Scan(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchAny(query, filter.Search, "bill_number", "caterer_name")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "caterer_id":
			query = query.Where("caterer_id = ?", value)
		case "from":
			query = query.Where("bill_date >= ?", value)
		case "to":
			query = query.Where("bill_date <= ?", value)
		case "overdue":
			if value == true {
				query = query.Where("status IN ? AND due_date < ?",
					[]string{string(billing.BillStatusUnpaid), string(billing.BillStatusPartiallyPaid)},
					time.Now())
			}
		}
	}
	return query
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
