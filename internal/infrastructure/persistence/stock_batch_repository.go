package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockBatchRepository implements catalog.StockBatchRepository using GORM
type GormStockBatchRepository struct {
	db *gorm.DB
}

// NewGormStockBatchRepository creates a new GormStockBatchRepository
func NewGormStockBatchRepository(db *gorm.DB) *GormStockBatchRepository {
	return &GormStockBatchRepository{db: db}
}

// FindByID finds a stock batch by its ID
func (r *GormStockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockBatch, error) {
	var batch catalog.StockBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByProduct finds all batches of a product, newest first
func (r *GormStockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StockBatch, error) {
	var batches []catalog.StockBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("received_at DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByPurchase finds the batches created from one purchase
func (r *GormStockBatchRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]catalog.StockBatch, error) {
	var batches []catalog.StockBatch
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("received_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindAvailableByProduct finds undepleted batches of a product, oldest
// first so consumption follows FIFO.
func (r *GormStockBatchRepository) FindAvailableByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StockBatch, error) {
	var batches []catalog.StockBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND remaining > 0", productID).
		Order("received_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Save creates or updates a stock batch
func (r *GormStockBatchRepository) Save(ctx context.Context, batch *catalog.StockBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// SaveAll creates or updates multiple stock batches
func (r *GormStockBatchRepository) SaveAll(ctx context.Context, batches []*catalog.StockBatch) error {
	if len(batches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(batches).Error
}

// Delete deletes a stock batch
func (r *GormStockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.StockBatch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockBatchRepository implements StockBatchRepository
var _ catalog.StockBatchRepository = (*GormStockBatchRepository)(nil)
