package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/billing"
)

// ==================== Bill DTOs ====================

// CreateBillRequest represents a request to raise a caterer bill
type CreateBillRequest struct {
	CatererID uuid.UUID             `json:"caterer_id" binding:"required"`
	BillDate  *time.Time            `json:"bill_date"`
	DueDate   *time.Time            `json:"due_date"` // Defaults from the caterer's credit days
	Items     []CreateBillItemInput `json:"items" binding:"required,min=1"`
	Notes     string                `json:"notes"`
}

// CreateBillItemInput represents one delivered line on the bill
type CreateBillItemInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit" binding:"required,unitcode"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// RecordPaymentRequest represents a payment against a bill
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=cash upi bank_transfer cheque"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
}

// ExtendDueDateRequest moves a bill's due date forward
type ExtendDueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// BillListFilter represents filter options for the bill list
type BillListFilter struct {
	Search    string              `form:"search"`
	CatererID *uuid.UUID          `form:"caterer_id"`
	Status    *billing.BillStatus `form:"status"`
	Page      int                 `form:"page" binding:"min=1"`
	PageSize  int                 `form:"page_size" binding:"min=1,max=100"`
}

// BillResponse represents a caterer bill in API responses
type BillResponse struct {
	ID           uuid.UUID          `json:"id"`
	BillNumber   string             `json:"bill_number"`
	CatererID    uuid.UUID          `json:"caterer_id"`
	CatererName  string             `json:"caterer_name"`
	BillDate     time.Time          `json:"bill_date"`
	DueDate      time.Time          `json:"due_date"`
	Items        []BillItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	PaidAmount   decimal.Decimal    `json:"paid_amount"`
	Outstanding  decimal.Decimal    `json:"outstanding"`
	Status       string             `json:"status"`
	Overdue      bool               `json:"overdue"`
	DaysUntilDue int                `json:"days_until_due"`
	Notes        string             `json:"notes,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// BillItemResponse represents one line of a bill in API responses
type BillItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	BillID    uuid.UUID       `json:"bill_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ReminderResponse is one due-soon bill surfaced to the user
type ReminderResponse struct {
	BillID       uuid.UUID       `json:"bill_id"`
	BillNumber   string          `json:"bill_number"`
	CatererName  string          `json:"caterer_name"`
	DueDate      time.Time       `json:"due_date"`
	DaysUntilDue int             `json:"days_until_due"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// ToBillResponse converts a domain bill to a response DTO
func ToBillResponse(b *billing.CatererBill, now time.Time) BillResponse {
	items := make([]BillItemResponse, len(b.Items))
	for i := range b.Items {
		items[i] = BillItemResponse{
			ID:          b.Items[i].ID,
			ProductID:   b.Items[i].ProductID,
			Description: b.Items[i].Description,
			Quantity:    b.Items[i].Quantity,
			Unit:        string(b.Items[i].Unit),
			Rate:        b.Items[i].Rate,
			Amount:      b.Items[i].Amount,
		}
	}

	return BillResponse{
		ID:           b.ID,
		BillNumber:   b.BillNumber,
		CatererID:    b.CatererID,
		CatererName:  b.CatererName,
		BillDate:     b.BillDate,
		DueDate:      b.DueDate,
		Items:        items,
		TotalAmount:  b.TotalAmount,
		PaidAmount:   b.PaidAmount,
		Outstanding:  b.OutstandingAmount(),
		Status:       string(b.Status),
		Overdue:      b.IsOverdue(now),
		DaysUntilDue: b.DaysUntilDue(now),
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		BillID:    p.BillID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}
