package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
)

// BillStatus represents the payment status of a caterer bill
type BillStatus string

const (
	BillStatusUnpaid        BillStatus = "UNPAID"
	BillStatusPartiallyPaid BillStatus = "PARTIALLY_PAID"
	BillStatusPaid          BillStatus = "PAID"
	BillStatusCancelled     BillStatus = "CANCELLED"
)

// IsValid checks if the status is a known one
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusUnpaid, BillStatusPartiallyPaid, BillStatusPaid, BillStatusCancelled:
		return true
	}
	return false
}

// BillItem is one delivered line on a caterer bill
type BillItem struct {
	shared.BaseEntity
	BillID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID           `gorm:"type:uuid;index"`
	Description string               `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal      `gorm:"type:decimal(18,3);not null"`
	Unit        valueobject.UnitCode `gorm:"type:varchar(10);not null"`
	Rate        decimal.Decimal      `gorm:"type:decimal(18,2);not null"` // Price per unit
	Amount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"` // round2(quantity * rate)
	SortOrder   int                  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (BillItem) TableName() string {
	return "bill_items"
}

// CatererBill is a credit bill raised against a caterer for delivered
// goods. It is the aggregate root for billing operations: items,
// payments, and the payment status all live on the bill.
type CatererBill struct {
	shared.BaseAggregateRoot
	BillNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CatererID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CatererName string          `gorm:"type:varchar(200);not null"`
	BillDate    time.Time       `gorm:"not null;index"`
	DueDate     time.Time       `gorm:"not null;index"`
	Items       []BillItem      `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      BillStatus      `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CatererBill) TableName() string {
	return "caterer_bills"
}

// NewCatererBill creates a new unpaid bill
func NewCatererBill(billNumber string, catererID uuid.UUID, catererName string, billDate, dueDate time.Time) (*CatererBill, error) {
	if strings.TrimSpace(billNumber) == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if catererID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATERER", "Caterer is required")
	}
	if strings.TrimSpace(catererName) == "" {
		return nil, shared.NewDomainError("INVALID_CATERER", "Caterer name cannot be empty")
	}
	if dueDate.Before(billDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot precede bill date")
	}

	return &CatererBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		CatererID:         catererID,
		CatererName:       catererName,
		BillDate:          billDate,
		DueDate:           dueDate,
		Items:             []BillItem{},
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		Status:            BillStatusUnpaid,
	}, nil
}

// AddItem adds a delivered line and recomputes the bill total.
// Items cannot be changed once any payment has been recorded.
func (b *CatererBill) AddItem(productID *uuid.UUID, description string, quantity decimal.Decimal, unit valueobject.UnitCode, rate decimal.Decimal) (*BillItem, error) {
	if err := b.ensureModifiable(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown unit code")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Invalid quantity for %s", description))
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RATE", fmt.Sprintf("Invalid rate for %s", description))
	}

	item := BillItem{
		BaseEntity:  shared.NewBaseEntity(),
		BillID:      b.ID,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		Unit:        unit,
		Rate:        rate,
		Amount:      quantity.Mul(rate).Round(2),
		SortOrder:   len(b.Items),
	}
	b.Items = append(b.Items, item)
	b.recalculateTotal()
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return &b.Items[len(b.Items)-1], nil
}

// RemoveItem removes a line and recomputes the bill total
func (b *CatererBill) RemoveItem(itemID uuid.UUID) error {
	if err := b.ensureModifiable(); err != nil {
		return err
	}

	for i, item := range b.Items {
		if item.ID == itemID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			for j := range b.Items {
				b.Items[j].SortOrder = j
			}
			b.recalculateTotal()
			b.UpdatedAt = time.Now()
			b.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Bill item not found")
}

// RecordPayment applies a payment against the bill and returns the
// payment record. Overpayment is rejected.
func (b *CatererBill) RecordPayment(amount decimal.Decimal, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if b.Status == BillStatusCancelled {
		return nil, shared.NewDomainError("BILL_CANCELLED", "Cannot pay a cancelled bill")
	}
	if b.Status == BillStatusPaid {
		return nil, shared.NewDomainError("ALREADY_PAID", "Bill is already fully paid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(b.OutstandingAmount()) {
		return nil, shared.NewDomainError("OVERPAYMENT", "Payment exceeds outstanding amount")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	payment, err := NewPayment(b.ID, amount, method, reference, paidAt)
	if err != nil {
		return nil, err
	}

	b.PaidAmount = b.PaidAmount.Add(amount).Round(2)
	if b.PaidAmount.GreaterThanOrEqual(b.TotalAmount) {
		b.Status = BillStatusPaid
	} else {
		b.Status = BillStatusPartiallyPaid
	}
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return payment, nil
}

// Cancel voids the bill. Bills with payments recorded cannot be cancelled.
func (b *CatererBill) Cancel() error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Bill is already cancelled")
	}
	if b.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel a bill with payments recorded")
	}

	b.Status = BillStatusCancelled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// ExtendDueDate moves the due date forward
func (b *CatererBill) ExtendDueDate(newDueDate time.Time) error {
	if !newDueDate.After(b.DueDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "New due date must be later than the current one")
	}

	b.DueDate = newDueDate
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes on the bill
func (b *CatererBill) SetNotes(notes string) {
	b.Notes = notes
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// OutstandingAmount returns the unpaid remainder
func (b *CatererBill) OutstandingAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// IsSettled returns true when nothing remains outstanding
func (b *CatererBill) IsSettled() bool {
	return b.Status == BillStatusPaid || b.Status == BillStatusCancelled
}

// IsOverdue returns true if the bill is unpaid past its due date
func (b *CatererBill) IsOverdue(now time.Time) bool {
	if b.IsSettled() {
		return false
	}
	return daysUntil(now, b.DueDate) < 0
}

// IsDueSoon returns true if the bill still has an outstanding balance
// and falls due within the next two days (today counts).
func (b *CatererBill) IsDueSoon(now time.Time) bool {
	if b.IsSettled() {
		return false
	}
	days := daysUntil(now, b.DueDate)
	return days >= 0 && days <= DueSoonWindowDays
}

// DaysUntilDue returns whole calendar days from now to the due date.
// Negative means overdue.
func (b *CatererBill) DaysUntilDue(now time.Time) int {
	return daysUntil(now, b.DueDate)
}

func (b *CatererBill) ensureModifiable() error {
	if b.Status == BillStatusCancelled {
		return shared.NewDomainError("BILL_CANCELLED", "Cannot modify a cancelled bill")
	}
	if b.PaidAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot modify a bill with payments recorded")
	}
	return nil
}

func (b *CatererBill) recalculateTotal() {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	b.TotalAmount = total.Round(2)
}

// DueSoonWindowDays is how many days ahead a bill counts as due soon
const DueSoonWindowDays = 2

// daysUntil compares calendar days, ignoring the time of day
func daysUntil(now, due time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay).Hours() / 24)
}
