package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// Repository defines persistence operations for storefront orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, o *Order) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}
