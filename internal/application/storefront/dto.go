package storefront

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/order"
)

// ShowcaseProductResponse is a product as shown on the public storefront.
// Purchase prices and stock figures stay internal.
type ShowcaseProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	BaseUnit     string          `json:"base_unit"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	InStock      bool            `json:"in_stock"`
}

// PlaceOrderRequest represents a customer placing an order from the showcase
type PlaceOrderRequest struct {
	CustomerName  string                `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerPhone string                `json:"customer_phone" binding:"required,min=6,max=50"`
	Notes         string                `json:"notes"`
	Items         []PlaceOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrderItemInput is one requested product on a new order
type PlaceOrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// OrderListFilter represents filter options for the staff order list
type OrderListFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
}

// CancelOrderRequest represents cancelling an order with a reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse represents a storefront order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	FulfilledAt   *time.Time          `json:"fulfilled_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ToShowcaseProductResponse converts a domain Product to its public view
func ToShowcaseProductResponse(p *catalog.Product) ShowcaseProductResponse {
	return ShowcaseProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		BaseUnit:     string(p.BaseUnit),
		SellingPrice: p.SellingPrice,
		InStock:      p.StockOnHand.IsPositive(),
	}
}

// ToOrderResponse converts a domain Order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Unit:        string(item.Unit),
			Rate:        item.Rate,
			Amount:      item.Amount,
		}
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		Notes:         o.Notes,
		ConfirmedAt:   o.ConfirmedAt,
		FulfilledAt:   o.FulfilledAt,
		CreatedAt:     o.CreatedAt,
	}
}
