package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/catalog"
)

// ==================== Category DTOs ====================

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	BaseUnit      string           `json:"base_unit" binding:"required,unitcode"`
	GSTPercentage *decimal.Decimal `json:"gst_percentage"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStock      *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	GSTPercentage *decimal.Decimal `json:"gst_percentage"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStock      *decimal.Decimal `json:"min_stock"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status"`
	Page       int        `form:"page" binding:"min=1"`
	PageSize   int        `form:"page_size" binding:"min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	BaseUnit      string          `json:"base_unit"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	StockOnHand   decimal.Decimal `json:"stock_on_hand"`
	LowStock      bool            `json:"low_stock"`
	Showcased     bool            `json:"showcased"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StockBatchResponse represents a stock batch in API responses
type StockBatchResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	PurchaseID  *uuid.UUID      `json:"purchase_id,omitempty"`
	BatchNumber string          `json:"batch_number"`
	Quantity    decimal.Decimal `json:"quantity"`
	Remaining   decimal.Decimal `json:"remaining"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	ReceivedAt  time.Time       `json:"received_at"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// ToCategoryResponse converts a domain Category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
	}
}

// ToProductResponse converts a domain Product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		BaseUnit:      string(p.BaseUnit),
		GSTPercentage: p.GSTPercentage,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		MinStock:      p.MinStock,
		StockOnHand:   p.StockOnHand,
		LowStock:      p.IsLowStock(),
		Showcased:     p.Showcased,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToStockBatchResponse converts a domain StockBatch to a response DTO
func ToStockBatchResponse(b *catalog.StockBatch) StockBatchResponse {
	return StockBatchResponse{
		ID:          b.ID,
		ProductID:   b.ProductID,
		PurchaseID:  b.PurchaseID,
		BatchNumber: b.BatchNumber,
		Quantity:    b.Quantity,
		Remaining:   b.Remaining,
		Unit:        string(b.Unit),
		CostPerUnit: b.CostPerUnit,
		ReceivedAt:  b.ReceivedAt,
		ExpiresAt:   b.ExpiresAt,
	}
}
