package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents where a storefront enquiry is in its lifecycle
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"       // Placed from the public showcase
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Accepted by staff
	OrderStatusFulfilled OrderStatus = "FULFILLED" // Goods handed over
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known one
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to the target
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusNew:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusFulfilled || target == OrderStatusCancelled
	default:
		return false
	}
}

// OrderItem is one requested product on a storefront order
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProductName string               `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal      `gorm:"type:decimal(18,3);not null"`
	Unit        valueobject.UnitCode `gorm:"type:varchar(10);not null"`
	Rate        decimal.Decimal      `gorm:"type:decimal(18,2);not null"` // Price per unit at time of ordering
	Amount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"` // round2(quantity * rate)
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is an enquiry placed from the public showcase. No money moves
// through it; staff confirm and settle offline.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName  string          `gorm:"type:varchar(200);not null"`
	CustomerPhone string          `gorm:"type:varchar(50);not null"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'NEW'"`
	Notes         string          `gorm:"type:text"`
	ConfirmedAt   *time.Time
	FulfilledAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new storefront order
func NewOrder(orderNumber, customerName, customerPhone string) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if strings.TrimSpace(customerPhone) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer phone cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerName:      strings.TrimSpace(customerName),
		CustomerPhone:     strings.TrimSpace(customerPhone),
		Items:             []OrderItem{},
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusNew,
	}, nil
}

// AddItem adds a requested product to a new order
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, unit valueobject.UnitCode, rate decimal.Decimal) error {
	if o.Status != OrderStatusNew {
		return shared.NewDomainError("INVALID_STATUS", "Only new orders can be modified")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if strings.TrimSpace(productName) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_UNIT", "Unknown unit code")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Unit:        unit,
		Rate:        rate,
		Amount:      quantity.Mul(rate).Round(2),
	})
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes on the order
func (o *Order) SetNotes(notes string) {
	o.Notes = strings.TrimSpace(notes)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Confirm accepts the order
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATUS", "Order cannot be confirmed from its current status")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order has no items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Fulfill marks the goods as handed over
func (o *Order) Fulfill() error {
	if !o.Status.CanTransitionTo(OrderStatusFulfilled) {
		return shared.NewDomainError("INVALID_STATUS", "Order cannot be fulfilled from its current status")
	}

	now := time.Now()
	o.Status = OrderStatusFulfilled
	o.FulfilledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel voids the order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS", "Order cannot be cancelled from its current status")
	}

	o.Status = OrderStatusCancelled
	if reason != "" {
		o.Notes = reason
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total.Round(2)
}
