package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/purchase"
)

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to create a purchase invoice
type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID                 `json:"supplier_id" binding:"required"`
	PurchaseDate *time.Time                `json:"purchase_date"`
	Items        []CreatePurchaseItemInput `json:"items"`
	Notes        string                    `json:"notes"`
}

// CreatePurchaseItemInput represents one line in the create request.
// Quantity, rate, and GST arrive as raw form text; unparseable values
// coerce to zero so a half-typed draft can still be saved.
type CreatePurchaseItemInput struct {
	ProductID     *uuid.UUID `json:"product_id"`
	ItemName      string     `json:"item_name"`
	Quantity      string     `json:"quantity"`
	Unit          string     `json:"unit" binding:"required,unitcode"`
	Rate          string     `json:"rate"`
	GSTPercentage *string    `json:"gst_percentage"` // Defaults from config when omitted
}

// AddPurchaseItemRequest represents a request to add a line to a draft
type AddPurchaseItemRequest struct {
	ProductID     *uuid.UUID `json:"product_id"`
	ItemName      string     `json:"item_name" binding:"required,min=1,max=200"`
	Quantity      string     `json:"quantity"`
	Unit          string     `json:"unit" binding:"required,unitcode"`
	Rate          string     `json:"rate"`
	GSTPercentage *string    `json:"gst_percentage"`
}

// UpdatePurchaseItemRequest represents a request to update a draft line
type UpdatePurchaseItemRequest struct {
	Quantity      *string `json:"quantity"`
	Rate          *string `json:"rate"`
	GSTPercentage *string `json:"gst_percentage"`
}

// ChangeItemUnitRequest converts one line's quantity to a different unit
type ChangeItemUnitRequest struct {
	Unit string `json:"unit" binding:"required,unitcode"`
}

// CancelPurchaseRequest represents a request to cancel a purchase
type CancelPurchaseRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PreviewLineRequest asks for derived amounts without persisting anything
type PreviewLineRequest struct {
	Quantity      string  `json:"quantity"`
	Rate          string  `json:"rate"`
	GSTPercentage *string `json:"gst_percentage"`
}

// PreviewLineResponse carries the derived amounts for a line preview
type PreviewLineResponse struct {
	GSTAmount decimal.Decimal `json:"gst_amount"`
	Amount    decimal.Decimal `json:"amount"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Search     string                   `form:"search"`
	SupplierID *uuid.UUID               `form:"supplier_id"`
	Status     *purchase.PurchaseStatus `form:"status"`
	StartDate  *time.Time               `form:"start_date"`
	EndDate    *time.Time               `form:"end_date"`
	Page       int                      `form:"page" binding:"min=1"`
	PageSize   int                      `form:"page_size" binding:"min=1,max=100"`
}

// PurchaseResponse represents a purchase invoice in API responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	BillNumber     string                 `json:"bill_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	Items          []PurchaseItemResponse `json:"items"`
	ItemCount      int                    `json:"item_count"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	TotalGSTAmount decimal.Decimal        `json:"total_gst_amount"`
	GrandTotal     decimal.Decimal        `json:"grand_total"`
	Status         string                 `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	SubmittedAt    *time.Time             `json:"submitted_at,omitempty"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	CancelReason   string                 `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Version        int                    `json:"version"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	ItemName      string          `json:"item_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Rate          decimal.Decimal `json:"rate"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Amount        decimal.Decimal `json:"amount"`
	SortOrder     int             `json:"sort_order"`
}

// PurchaseListItemResponse represents a purchase in list responses
type PurchaseListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	BillNumber   string          `json:"bill_number"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	PurchaseDate time.Time       `json:"purchase_date"`
	ItemCount    int             `json:"item_count"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToPurchaseResponse converts a domain Purchase to a response DTO
func ToPurchaseResponse(p *purchase.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i := range p.Items {
		items[i] = ToPurchaseItemResponse(&p.Items[i])
	}

	return PurchaseResponse{
		ID:             p.ID,
		BillNumber:     p.BillNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		PurchaseDate:   p.PurchaseDate,
		Items:          items,
		ItemCount:      p.ItemCount(),
		TotalAmount:    p.TotalAmount,
		TotalGSTAmount: p.TotalGSTAmount,
		GrandTotal:     p.GrandTotal,
		Status:         string(p.Status),
		Notes:          p.Notes,
		SubmittedAt:    p.SubmittedAt,
		ReceivedAt:     p.ReceivedAt,
		CancelReason:   p.CancelReason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToPurchaseItemResponse converts a domain LineItem to a response DTO
func ToPurchaseItemResponse(item *purchase.LineItem) PurchaseItemResponse {
	return PurchaseItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		ItemName:      item.ItemName,
		Quantity:      item.Quantity,
		Unit:          string(item.Unit),
		Rate:          item.Rate,
		GSTPercentage: item.GSTPercentage,
		GSTAmount:     item.GSTAmount,
		Amount:        item.Amount,
		SortOrder:     item.SortOrder,
	}
}

// ToPurchaseListItemResponse converts a domain Purchase to a list DTO
func ToPurchaseListItemResponse(p *purchase.Purchase) PurchaseListItemResponse {
	return PurchaseListItemResponse{
		ID:           p.ID,
		BillNumber:   p.BillNumber,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		PurchaseDate: p.PurchaseDate,
		ItemCount:    p.ItemCount(),
		GrandTotal:   p.GrandTotal,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
	}
}
