package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBatch(t *testing.T) *StockBatch {
	t.Helper()
	b, err := NewStockBatch(uuid.New(), "B-2026-08-001", decimal.NewFromInt(2000), valueobject.UnitG, decimal.NewFromFloat(0.05))
	require.NoError(t, err)
	return b
}

func TestNewStockBatch(t *testing.T) {
	b := createTestBatch(t)
	assert.True(t, b.Quantity.Equal(b.Remaining))
	assert.False(t, b.IsDepleted())
	assert.Nil(t, b.PurchaseID)
}

func TestNewStockBatch_Validation(t *testing.T) {
	_, err := NewStockBatch(uuid.Nil, "B-1", decimal.NewFromInt(1), valueobject.UnitG, decimal.Zero)
	assert.Error(t, err)

	_, err = NewStockBatch(uuid.New(), "", decimal.NewFromInt(1), valueobject.UnitG, decimal.Zero)
	assert.Error(t, err)

	_, err = NewStockBatch(uuid.New(), "B-1", decimal.Zero, valueobject.UnitG, decimal.Zero)
	assert.Error(t, err)

	_, err = NewStockBatch(uuid.New(), "B-1", decimal.NewFromInt(1), valueobject.UnitCode("tonne"), decimal.Zero)
	assert.Error(t, err)
}

func TestStockBatch_Consume(t *testing.T) {
	b := createTestBatch(t)

	require.NoError(t, b.Consume(decimal.NewFromInt(1500)))
	assert.True(t, decimal.NewFromInt(500).Equal(b.Remaining))

	err := b.Consume(decimal.NewFromInt(600))
	assert.Equal(t, shared.ErrInsufficientStock, err)

	require.NoError(t, b.Consume(decimal.NewFromInt(500)))
	assert.True(t, b.IsDepleted())
}

func TestStockBatch_Expiry(t *testing.T) {
	b := createTestBatch(t)

	assert.Error(t, b.SetExpiry(b.ReceivedAt.Add(-time.Hour)))

	expiry := b.ReceivedAt.Add(180 * 24 * time.Hour)
	require.NoError(t, b.SetExpiry(expiry))
	assert.False(t, b.IsExpired(expiry.Add(-time.Hour)))
	assert.True(t, b.IsExpired(expiry.Add(time.Hour)))
}

func TestStockBatch_LinkPurchase(t *testing.T) {
	b := createTestBatch(t)
	purchaseID := uuid.New()
	b.LinkPurchase(purchaseID)
	require.NotNil(t, b.PurchaseID)
	assert.Equal(t, purchaseID, *b.PurchaseID)
}
