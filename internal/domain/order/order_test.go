package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("SO-2026-001", "Priya Nair", "+91 98450 11111")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := createTestOrder(t)
	assert.Equal(t, OrderStatusNew, o.Status)
	assert.True(t, o.TotalAmount.IsZero())

	_, err := NewOrder("", "Name", "phone")
	assert.Error(t, err)
	_, err = NewOrder("SO-1", "  ", "phone")
	assert.Error(t, err)
	_, err = NewOrder("SO-1", "Name", "")
	assert.Error(t, err)
}

func TestOrder_AddItem(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.AddItem(uuid.New(), "Garam Masala 500g", decimal.NewFromInt(2), valueobject.UnitPcs, decimal.NewFromFloat(240.50)))
	assert.Equal(t, "481.00", o.TotalAmount.StringFixed(2))

	assert.Error(t, o.AddItem(uuid.Nil, "X", decimal.NewFromInt(1), valueobject.UnitPcs, decimal.NewFromInt(1)))
	assert.Error(t, o.AddItem(uuid.New(), "X", decimal.Zero, valueobject.UnitPcs, decimal.NewFromInt(1)))
}

func TestOrder_Lifecycle(t *testing.T) {
	o := createTestOrder(t)

	// Empty order cannot be confirmed
	assert.Error(t, o.Confirm())

	require.NoError(t, o.AddItem(uuid.New(), "Turmeric 1kg", decimal.NewFromInt(1), valueobject.UnitPcs, decimal.NewFromInt(180)))
	require.NoError(t, o.Confirm())
	assert.NotNil(t, o.ConfirmedAt)

	// Confirmed orders are frozen
	assert.Error(t, o.AddItem(uuid.New(), "More", decimal.NewFromInt(1), valueobject.UnitPcs, decimal.NewFromInt(1)))

	require.NoError(t, o.Fulfill())
	assert.NotNil(t, o.FulfilledAt)
	assert.Error(t, o.Cancel("too late"))
}

func TestOrder_Cancel(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.AddItem(uuid.New(), "Turmeric 1kg", decimal.NewFromInt(1), valueobject.UnitPcs, decimal.NewFromInt(180)))

	require.NoError(t, o.Cancel("changed mind"))
	assert.Equal(t, "changed mind", o.Notes)
	assert.Error(t, o.Fulfill())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusNew.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusFulfilled))
	assert.False(t, OrderStatusNew.CanTransitionTo(OrderStatusFulfilled))
	assert.False(t, OrderStatusFulfilled.CanTransitionTo(OrderStatusCancelled))
}
