package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/partner"
)

// ==================== Supplier DTOs ====================

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Code        string           `json:"code" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Type        string           `json:"type" binding:"required,oneof=farmer wholesaler processor distributor"`
	ContactName string           `json:"contact_name"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email"`
	GSTIN       string           `json:"gstin"`
	CreditDays  *int             `json:"credit_days"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       string           `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ShortName   *string `json:"short_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	GSTIN       *string `json:"gstin"`
	Notes       *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	ShortName   string          `json:"short_name,omitempty"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	ContactName string          `json:"contact_name,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	GSTIN       string          `json:"gstin,omitempty"`
	CreditDays  int             `json:"credit_days"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Balance     decimal.Decimal `json:"balance"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ==================== Caterer DTOs ====================

// CreateCatererRequest represents a request to create a caterer account
type CreateCatererRequest struct {
	Code            string `json:"code" binding:"required,min=1,max=50"`
	Name            string `json:"name" binding:"required,min=1,max=200"`
	ContactName     string `json:"contact_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	GSTIN           string `json:"gstin"`
	DeliveryAddress string `json:"delivery_address"`
	City            string `json:"city"`
	CreditDays      *int   `json:"credit_days"`
	Notes           string `json:"notes"`
}

// UpdateCatererRequest represents a request to update a caterer
type UpdateCatererRequest struct {
	Name            *string `json:"name"`
	ContactName     *string `json:"contact_name"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	GSTIN           *string `json:"gstin"`
	DeliveryAddress *string `json:"delivery_address"`
	City            *string `json:"city"`
	CreditDays      *int    `json:"credit_days"`
	Notes           *string `json:"notes"`
}

// CatererResponse represents a caterer in API responses
type CatererResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	ContactName     string          `json:"contact_name,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	GSTIN           string          `json:"gstin,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	City            string          `json:"city,omitempty"`
	CreditDays      int             `json:"credit_days"`
	Balance         decimal.Decimal `json:"balance"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ListFilter represents filter options for partner lists
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
}

// ToSupplierResponse converts a domain Supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		ShortName:   s.ShortName,
		Type:        string(s.Type),
		Status:      string(s.Status),
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		GSTIN:       s.GSTIN,
		CreditDays:  s.CreditDays,
		CreditLimit: s.CreditLimit,
		Balance:     s.Balance,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToCatererResponse converts a domain Caterer to a response DTO
func ToCatererResponse(c *partner.Caterer) CatererResponse {
	return CatererResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		Status:          string(c.Status),
		ContactName:     c.ContactName,
		Phone:           c.Phone,
		Email:           c.Email,
		GSTIN:           c.GSTIN,
		DeliveryAddress: c.DeliveryAddress,
		City:            c.City,
		CreditDays:      c.CreditDays,
		Balance:         c.Balance,
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
