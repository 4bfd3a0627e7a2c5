package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// CatererRepository defines persistence operations for caterers
type CatererRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Caterer, error)
	FindByCode(ctx context.Context, code string) (*Caterer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Caterer, error)
	FindActive(ctx context.Context) ([]Caterer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, caterer *Caterer) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
