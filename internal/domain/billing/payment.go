package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
)

// PaymentMethod represents how a caterer paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// IsValid checks if the method is a known one
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// Payment is an immutable record of money received against a bill
type Payment struct {
	shared.BaseEntity
	BillID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(100)"` // UTR / cheque number
	PaidAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment record
func NewPayment(billID uuid.UUID, amount decimal.Decimal, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Bill is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		BillID:     billID,
		Amount:     amount.Round(2),
		Method:     method,
		Reference:  reference,
		PaidAt:     paidAt,
	}, nil
}
