package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatererRepository implements partner.CatererRepository using GORM
type GormCatererRepository struct {
	db *gorm.DB
}

// NewGormCatererRepository creates a new GormCatererRepository
func NewGormCatererRepository(db *gorm.DB) *GormCatererRepository {
	return &GormCatererRepository{db: db}
}

// FindByID finds a caterer by its ID
func (r *GormCatererRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Caterer, error) {
	var caterer partner.Caterer
	if err := r.db.WithContext(ctx).First(&caterer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &caterer, nil
}

// FindByCode finds a caterer by its code
func (r *GormCatererRepository) FindByCode(ctx context.Context, code string) (*partner.Caterer, error) {
	var caterer partner.Caterer
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&caterer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &caterer, nil
}

// FindAll finds all caterers matching the filter
func (r *GormCatererRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Caterer, error) {
	var caterers []partner.Caterer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Caterer{}), filter)
	query = applyOrder(paginate(query, filter), filter, "name ASC")

	if err := query.Find(&caterers).Error; err != nil {
		return nil, err
	}
	return caterers, nil
}

// FindActive finds all active caterers
func (r *GormCatererRepository) FindActive(ctx context.Context) ([]partner.Caterer, error) {
	var caterers []partner.Caterer
	if err := r.db.WithContext(ctx).
		Where("status = ?", partner.CatererStatusActive).
		Order("name ASC").
		Find(&caterers).Error; err != nil {
		return nil, err
	}
	return caterers, nil
}

// Count counts caterers matching the filter
func (r *GormCatererRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Caterer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a caterer
func (r *GormCatererRepository) Save(ctx context.Context, caterer *partner.Caterer) error {
	return r.db.WithContext(ctx).Save(caterer).Error
}

// Delete deletes a caterer
func (r *GormCatererRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Caterer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a caterer with the given code exists
func (r *GormCatererRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Caterer{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCatererRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = searchAny(query, filter.Search, "name", "code", "phone", "email")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		case "has_balance":
			if value == true {
				query = query.Where("balance > 0")
			} else {
				query = query.Where("balance = 0")
			}
		}
	}
	return query
}

// Ensure GormCatererRepository implements CatererRepository
var _ partner.CatererRepository = (*GormCatererRepository)(nil)
