package purchase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
)

// PurchaseStatus represents the status of a purchase invoice
type PurchaseStatus string

const (
	PurchaseStatusDraft     PurchaseStatus = "DRAFT"
	PurchaseStatusSubmitted PurchaseStatus = "SUBMITTED"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusDraft, PurchaseStatusSubmitted, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	switch s {
	case PurchaseStatusDraft:
		return target == PurchaseStatusSubmitted || target == PurchaseStatusCancelled
	case PurchaseStatusSubmitted:
		return target == PurchaseStatusReceived || target == PurchaseStatusCancelled
	case PurchaseStatusReceived, PurchaseStatusCancelled:
		return false // Terminal states
	}
	return false
}

// LineItem represents one row of a purchase invoice.
// GSTAmount and Amount are always derived; they are never set directly.
type LineItem struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key"`
	PurchaseID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID     *uuid.UUID          `gorm:"type:uuid;index"` // Optional link to catalog
	ItemName      string              `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Unit          valueobject.UnitCode `gorm:"type:varchar(10);not null"`
	Rate          decimal.Decimal     `gorm:"type:decimal(18,4);not null"` // Price per unit
	GSTPercentage decimal.Decimal     `gorm:"type:decimal(5,2);not null"`
	GSTAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"` // round2(qty*rate*gst/100)
	Amount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"` // round2(qty*rate) + GSTAmount
	SortOrder     int                 `gorm:"not null;default:0"`
	CreatedAt     time.Time           `gorm:"not null"`
	UpdatedAt     time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "purchase_line_items"
}

// Qualifies reports whether the line counts toward totals and submission.
// Rows without an item name are incomplete placeholders.
func (i *LineItem) Qualifies() bool {
	return strings.TrimSpace(i.ItemName) != ""
}

// Recalculate rederives GSTAmount and Amount from the editable fields
func (i *LineItem) Recalculate() {
	amounts := ComputeLineAmounts(i.Quantity, i.Rate, i.GSTPercentage)
	i.GSTAmount = amounts.GSTAmount
	i.Amount = amounts.Amount
	i.UpdatedAt = time.Now()
}

// PreTaxAmount returns the rounded pre-tax amount of the line
func (i *LineItem) PreTaxAmount() decimal.Decimal {
	return i.Quantity.Mul(i.Rate).Round(2)
}

// GetAmountMoney returns the line total as Money
func (i *LineItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.Amount)
}

// NewLineItem creates a new purchase line item with derived amounts.
// The item name is required; everything else passes through unvalidated
// because this layer performs arithmetic, not business checks - those run
// at submission.
func NewLineItem(purchaseID uuid.UUID, productID *uuid.UUID, itemName string, quantity decimal.Decimal, unit valueobject.UnitCode, rate, gstPercentage decimal.Decimal) (*LineItem, error) {
	if strings.TrimSpace(itemName) == "" {
		return nil, shared.NewDomainError("ITEM_NAME_REQUIRED", "Item name required")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown unit code: "+unit.String())
	}

	now := time.Now()
	item := &LineItem{
		ID:            uuid.New(),
		PurchaseID:    purchaseID,
		ProductID:     productID,
		ItemName:      strings.TrimSpace(itemName),
		Quantity:      quantity,
		Unit:          unit,
		Rate:          rate,
		GSTPercentage: gstPercentage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	item.Recalculate()
	return item, nil
}

// Purchase represents a purchase invoice aggregate root.
// Every mutation of the item list rederives the invoice totals in the
// same pass, so derived state never feeds back into another recompute.
type Purchase struct {
	shared.BaseAggregateRoot
	BillNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName   string          `gorm:"type:varchar(200);not null"`
	PurchaseDate   time.Time       `gorm:"not null;index"`
	Items          []LineItem      `gorm:"foreignKey:PurchaseID;references:ID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Pre-tax sum
	TotalGSTAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // TotalAmount + TotalGSTAmount
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes          string          `gorm:"type:text"`
	SubmittedAt    *time.Time
	ReceivedAt     *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new draft purchase invoice
func NewPurchase(billNumber string, supplierID uuid.UUID, supplierName string, purchaseDate time.Time) (*Purchase, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if len(billNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		PurchaseDate:      purchaseDate,
		Items:             make([]LineItem, 0),
		TotalAmount:       decimal.Zero,
		TotalGSTAmount:    decimal.Zero,
		GrandTotal:        decimal.Zero,
		Status:            PurchaseStatusDraft,
	}, nil
}

// AddItem appends a confirmed entry row to the invoice.
// Only allowed in DRAFT status.
func (p *Purchase) AddItem(productID *uuid.UUID, itemName string, quantity decimal.Decimal, unit valueobject.UnitCode, rate, gstPercentage decimal.Decimal) (*LineItem, error) {
	if p.Status != PurchaseStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase")
	}

	item, err := NewLineItem(p.ID, productID, itemName, quantity, unit, rate, gstPercentage)
	if err != nil {
		return nil, err
	}
	item.SortOrder = len(p.Items)

	p.Items = append(p.Items, *item)
	p.recalculateTotals()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return item, nil
}

// UpdateItem updates the editable fields of an existing line and rederives
// the line and invoice amounts. Only allowed in DRAFT status.
func (p *Purchase) UpdateItem(itemID uuid.UUID, quantity, rate, gstPercentage decimal.Decimal) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft purchase")
	}

	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			p.Items[idx].Quantity = quantity
			p.Items[idx].Rate = rate
			p.Items[idx].GSTPercentage = gstPercentage
			p.Items[idx].Recalculate()
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase line item not found")
}

// ChangeItemUnit converts a line's quantity to a new unit and rederives
// its amounts. Conversion is only defined within the unit's measurement
// family; a cross-family change is rejected without touching the line.
func (p *Purchase) ChangeItemUnit(itemID uuid.UUID, newUnit valueobject.UnitCode) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft purchase")
	}

	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			converted, err := valueobject.ConvertUnit(p.Items[idx].Quantity, p.Items[idx].Unit, newUnit)
			if err != nil {
				return err
			}
			p.Items[idx].Quantity = converted
			p.Items[idx].Unit = newUnit
			p.Items[idx].Recalculate()
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase line item not found")
}

// RemoveItem removes a line from the invoice. Only allowed in DRAFT status.
func (p *Purchase) RemoveItem(itemID uuid.UUID) error {
	if p.Status != PurchaseStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft purchase")
	}

	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			for i := range p.Items {
				p.Items[i].SortOrder = i
			}
			p.recalculateTotals()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase line item not found")
}

// SetNotes sets the invoice notes
func (p *Purchase) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// QualifyingItems returns the lines that count toward totals and submission
func (p *Purchase) QualifyingItems() []LineItem {
	items := make([]LineItem, 0, len(p.Items))
	for _, item := range p.Items {
		if item.Qualifies() {
			items = append(items, item)
		}
	}
	return items
}

// Submit validates the invoice and transitions DRAFT -> SUBMITTED.
// Validation failures name the offending line and leave all entered data
// intact for correction.
func (p *Purchase) Submit() error {
	if !p.Status.CanTransitionTo(PurchaseStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit purchase in %s status", p.Status))
	}

	qualifying := p.QualifyingItems()
	if len(qualifying) == 0 {
		return shared.NewDomainError("NO_ITEMS", "No items to purchase")
	}
	for _, item := range qualifying {
		if !item.Rate.IsPositive() {
			return shared.NewDomainError("INVALID_RATE", fmt.Sprintf("Invalid rate for %s", item.ItemName))
		}
		if !item.Quantity.IsPositive() {
			return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Invalid quantity for %s", item.ItemName))
		}
	}

	now := time.Now()
	p.Status = PurchaseStatusSubmitted
	p.SubmittedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// MarkReceived transitions SUBMITTED -> RECEIVED once the goods arrive.
// Stock batch creation happens in the application layer, which needs the
// catalog to resolve product base units.
func (p *Purchase) MarkReceived() error {
	if !p.Status.CanTransitionTo(PurchaseStatusReceived) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive purchase in %s status", p.Status))
	}

	now := time.Now()
	p.Status = PurchaseStatusReceived
	p.ReceivedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel cancels the purchase. Allowed in DRAFT or SUBMITTED status.
func (p *Purchase) Cancel(reason string) error {
	if !p.Status.CanTransitionTo(PurchaseStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase in %s status", p.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	p.Status = PurchaseStatusCancelled
	p.CancelledAt = &now
	p.CancelReason = reason
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// recalculateTotals rederives the invoice totals from the item list
func (p *Purchase) recalculateTotals() {
	totals := AggregateTotals(p.Items)
	p.TotalAmount = totals.TotalAmount
	p.TotalGSTAmount = totals.TotalGSTAmount
	p.GrandTotal = totals.GrandTotal
}

// Totals returns the current invoice totals
func (p *Purchase) Totals() InvoiceTotals {
	return InvoiceTotals{
		TotalAmount:    p.TotalAmount,
		TotalGSTAmount: p.TotalGSTAmount,
		GrandTotal:     p.GrandTotal,
	}
}

// GetItem returns a line by its ID
func (p *Purchase) GetItem(itemID uuid.UUID) *LineItem {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			return &p.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of lines on the invoice
func (p *Purchase) ItemCount() int {
	return len(p.Items)
}

// IsDraft returns true if the purchase is in draft status
func (p *Purchase) IsDraft() bool {
	return p.Status == PurchaseStatusDraft
}

// IsSubmitted returns true if the purchase has been submitted
func (p *Purchase) IsSubmitted() bool {
	return p.Status == PurchaseStatusSubmitted
}

// IsReceived returns true if the goods have been received
func (p *Purchase) IsReceived() bool {
	return p.Status == PurchaseStatusReceived
}

// IsCancelled returns true if the purchase is cancelled
func (p *Purchase) IsCancelled() bool {
	return p.Status == PurchaseStatusCancelled
}

// IsTerminal returns true if the purchase is in a terminal state
func (p *Purchase) IsTerminal() bool {
	return p.IsReceived() || p.IsCancelled()
}

// CanModify returns true if the item list can still change
func (p *Purchase) CanModify() bool {
	return p.IsDraft()
}

// GetGrandTotalMoney returns the grand total as Money
func (p *Purchase) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.GrandTotal)
}
