package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
)

// StockBatch is one received lot of a product, tracked in the product's
// base unit. Batches carry the purchase they came from so cost and age
// can be traced per lot.
type StockBatch struct {
	shared.BaseEntity
	ProductID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	PurchaseID    *uuid.UUID           `gorm:"type:uuid;index"` // Source purchase invoice, if any
	BatchNumber   string               `gorm:"type:varchar(50);not null;index"`
	Quantity      decimal.Decimal      `gorm:"type:decimal(18,3);not null"` // Received quantity in base units
	Remaining     decimal.Decimal      `gorm:"type:decimal(18,3);not null"` // Unconsumed quantity in base units
	Unit          valueobject.UnitCode `gorm:"type:varchar(10);not null"`   // Base unit at time of receipt
	CostPerUnit   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAt    time.Time            `gorm:"not null"`
	ExpiresAt     *time.Time           // Spices lose potency; optional best-before
}

// TableName returns the table name for GORM
func (StockBatch) TableName() string {
	return "stock_batches"
}

// NewStockBatch records a received lot. Quantity must already be in the
// product's base unit.
func NewStockBatch(productID uuid.UUID, batchNumber string, quantity decimal.Decimal, unit valueobject.UnitCode, costPerUnit decimal.Decimal) (*StockBatch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity must be positive")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown unit code")
	}
	if costPerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost per unit cannot be negative")
	}

	return &StockBatch{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		BatchNumber: batchNumber,
		Quantity:    quantity,
		Remaining:   quantity,
		Unit:        unit,
		CostPerUnit: costPerUnit,
		ReceivedAt:  time.Now(),
	}, nil
}

// LinkPurchase records which purchase invoice this batch came from
func (b *StockBatch) LinkPurchase(purchaseID uuid.UUID) {
	b.PurchaseID = &purchaseID
	b.UpdatedAt = time.Now()
}

// SetExpiry sets the best-before date
func (b *StockBatch) SetExpiry(expiresAt time.Time) error {
	if expiresAt.Before(b.ReceivedAt) {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry cannot precede receipt")
	}
	b.ExpiresAt = &expiresAt
	b.UpdatedAt = time.Now()
	return nil
}

// Consume draws down the remaining quantity, in base units
func (b *StockBatch) Consume(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if b.Remaining.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	b.Remaining = b.Remaining.Sub(quantity)
	b.UpdatedAt = time.Now()
	return nil
}

// IsDepleted returns true when nothing remains in the batch
func (b *StockBatch) IsDepleted() bool {
	return b.Remaining.IsZero()
}

// IsExpired returns true if the batch is past its best-before date
func (b *StockBatch) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}
