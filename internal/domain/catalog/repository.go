package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindShowcased(ctx context.Context) ([]Product, error)
	FindLowStock(ctx context.Context) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	FindActive(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// StockBatchRepository defines persistence operations for stock batches
type StockBatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockBatch, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockBatch, error)
	FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]StockBatch, error)
	FindAvailableByProduct(ctx context.Context, productID uuid.UUID) ([]StockBatch, error)
	Save(ctx context.Context, batch *StockBatch) error
	SaveAll(ctx context.Context, batches []*StockBatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
