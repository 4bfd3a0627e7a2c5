package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	p, err := NewProduct("turmeric-500", "Turmeric Powder", valueobject.UnitG)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	p := createTestProduct(t)
	assert.Equal(t, "TURMERIC-500", p.Code)
	assert.Equal(t, valueobject.UnitG, p.BaseUnit)
	assert.Equal(t, ProductStatusActive, p.Status)
	assert.False(t, p.Showcased)
	assert.True(t, p.StockOnHand.IsZero())
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("", "Name", valueobject.UnitG)
	assert.Error(t, err)

	_, err = NewProduct("CODE", "  ", valueobject.UnitG)
	assert.Error(t, err)

	_, err = NewProduct("CODE", "Name", valueobject.UnitCode("tonne"))
	assert.Error(t, err)
}

func TestProduct_SetGSTPercentage(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.SetGSTPercentage(decimal.NewFromInt(18)))
	assert.Error(t, p.SetGSTPercentage(decimal.NewFromInt(-1)))
	assert.Error(t, p.SetGSTPercentage(decimal.NewFromInt(101)))
}

func TestProduct_ReceiveStock_ConvertsToBaseUnit(t *testing.T) {
	p := createTestProduct(t) // base unit grams

	// 2 kg arrives, stored as 2000 g
	require.NoError(t, p.ReceiveStock(decimal.NewFromInt(2), valueobject.UnitKg))
	assert.True(t, decimal.NewFromInt(2000).Equal(p.StockOnHand))

	require.NoError(t, p.ReceiveStock(decimal.NewFromInt(500), valueobject.UnitG))
	assert.True(t, decimal.NewFromInt(2500).Equal(p.StockOnHand))
}

func TestProduct_ReceiveStock_CrossFamilyRejected(t *testing.T) {
	p := createTestProduct(t)

	err := p.ReceiveStock(decimal.NewFromInt(1), valueobject.UnitL)
	require.Error(t, err)
	assert.Equal(t, shared.ErrIncompatibleUnits, err)
	assert.True(t, p.StockOnHand.IsZero())
}

func TestProduct_DeductStock(t *testing.T) {
	p := createTestProduct(t)
	require.NoError(t, p.ReceiveStock(decimal.NewFromInt(1), valueobject.UnitKg))

	require.NoError(t, p.DeductStock(decimal.NewFromInt(250), valueobject.UnitG))
	assert.True(t, decimal.NewFromInt(750).Equal(p.StockOnHand))

	err := p.DeductStock(decimal.NewFromInt(2), valueobject.UnitKg)
	assert.Equal(t, shared.ErrInsufficientStock, err)
}

func TestProduct_LowStock(t *testing.T) {
	p := createTestProduct(t)
	require.NoError(t, p.SetMinStock(decimal.NewFromInt(500)))
	require.NoError(t, p.ReceiveStock(decimal.NewFromInt(400), valueobject.UnitG))

	assert.True(t, p.IsLowStock())

	require.NoError(t, p.ReceiveStock(decimal.NewFromInt(200), valueobject.UnitG))
	assert.False(t, p.IsLowStock())
}

func TestProduct_Showcase(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.Showcase())
	assert.True(t, p.Showcased)

	p.Deactivate()
	assert.False(t, p.Showcased)
	assert.Error(t, p.Showcase())
}

func TestProduct_Discontinue(t *testing.T) {
	p := createTestProduct(t)
	p.Discontinue()
	assert.Error(t, p.Activate())
}
