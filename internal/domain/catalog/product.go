package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a spice/masala SKU in the catalog.
// It is the aggregate root for product-related operations.
// Stock quantities are tracked in the product's base unit.
type Product struct {
	shared.BaseAggregateRoot
	Code          string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string               `gorm:"type:varchar(200);not null"`
	Description   string               `gorm:"type:text"`
	CategoryID    *uuid.UUID           `gorm:"type:uuid;index"`
	BaseUnit      valueobject.UnitCode `gorm:"type:varchar(10);not null"`             // Unit stock is kept in (e.g. "g", "ml", "pcs")
	GSTPercentage decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`  // Default GST rate for purchase lines
	PurchasePrice decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"` // Last cost price per base unit
	SellingPrice  decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"` // Selling price per base unit
	MinStock      decimal.Decimal      `gorm:"type:decimal(18,3);not null;default:0"` // Minimum stock level for alerts, in base units
	StockOnHand   decimal.Decimal      `gorm:"type:decimal(18,3);not null;default:0"` // Current stock in base units
	Showcased     bool                 `gorm:"not null;default:false"`                // Visible on the public storefront
	Status        ProductStatus        `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder     int                  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, baseUnit valueobject.UnitCode) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !baseUnit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown unit code")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		BaseUnit:          baseUnit,
		GSTPercentage:     decimal.Zero,
		PurchasePrice:     decimal.Zero,
		SellingPrice:      decimal.Zero,
		MinStock:          decimal.Zero,
		StockOnHand:       decimal.Zero,
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AssignCategory assigns the product to a category
func (p *Product) AssignCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// ClearCategory removes the product from its category
func (p *Product) ClearCategory() {
	p.CategoryID = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetGSTPercentage sets the default GST rate applied to purchase lines
func (p *Product) SetGSTPercentage(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_GST_RATE", "GST percentage cannot be negative")
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_RATE", "GST percentage cannot exceed 100")
	}

	p.GSTPercentage = rate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices sets the purchase and selling prices per base unit
func (p *Product) SetPrices(purchasePrice, sellingPrice valueobject.Money) error {
	if purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.PurchasePrice = purchasePrice.Amount()
	p.SellingPrice = sellingPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetMinStock sets the minimum stock alert level, in base units
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ReceiveStock increases stock on hand. The quantity is converted into
// the product's base unit before it is applied.
func (p *Product) ReceiveStock(quantity decimal.Decimal, unit valueobject.UnitCode) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	converted, err := valueobject.ConvertUnit(quantity, unit, p.BaseUnit)
	if err != nil {
		return err
	}

	p.StockOnHand = p.StockOnHand.Add(converted)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// DeductStock decreases stock on hand. The quantity is converted into
// the product's base unit before it is applied.
func (p *Product) DeductStock(quantity decimal.Decimal, unit valueobject.UnitCode) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	converted, err := valueobject.ConvertUnit(quantity, unit, p.BaseUnit)
	if err != nil {
		return err
	}
	if p.StockOnHand.LessThan(converted) {
		return shared.ErrInsufficientStock
	}

	p.StockOnHand = p.StockOnHand.Sub(converted)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Showcase puts the product on the public storefront
func (p *Product) Showcase() error {
	if p.Status != ProductStatusActive {
		return shared.NewDomainError("NOT_ACTIVE", "Only active products can be showcased")
	}

	p.Showcased = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Unshowcase removes the product from the public storefront
func (p *Product) Unshowcase() {
	p.Showcased = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("DISCONTINUED", "Discontinued products cannot be reactivated")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate deactivates the product and pulls it from the storefront
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.Showcased = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Discontinue permanently retires the product
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
	p.Showcased = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock returns true if stock on hand is at or below the alert level
func (p *Product) IsLowStock() bool {
	if p.MinStock.IsZero() {
		return false
	}
	return p.StockOnHand.LessThanOrEqual(p.MinStock)
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
