package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCaterer(t *testing.T) *Caterer {
	t.Helper()
	c, err := NewCaterer("cat-001", "Annapurna Caterers")
	require.NoError(t, err)
	return c
}

func TestNewCaterer(t *testing.T) {
	c := createTestCaterer(t)
	assert.Equal(t, "CAT-001", c.Code)
	assert.Equal(t, CatererStatusActive, c.Status)
	assert.Equal(t, 7, c.CreditDays)
	assert.True(t, c.Balance.IsZero())
}

func TestNewCaterer_Validation(t *testing.T) {
	_, err := NewCaterer("", "Name")
	assert.Error(t, err)

	_, err = NewCaterer("CAT-001", "   ")
	assert.Error(t, err)
}

func TestCaterer_SetCreditDays(t *testing.T) {
	c := createTestCaterer(t)

	require.NoError(t, c.SetCreditDays(14))
	assert.Equal(t, 14, c.CreditDays)

	assert.Error(t, c.SetCreditDays(-1))
	assert.Error(t, c.SetCreditDays(400))
}

func TestCaterer_Balance(t *testing.T) {
	c := createTestCaterer(t)

	require.NoError(t, c.AddBalance(decimal.NewFromFloat(708.00)))
	assert.True(t, c.HasBalance())

	require.NoError(t, c.DeductBalance(decimal.NewFromFloat(500.00)))
	assert.Equal(t, "208.00", c.Balance.StringFixed(2))

	assert.Error(t, c.DeductBalance(decimal.NewFromInt(1000)))
}

func TestCaterer_StatusTransitions(t *testing.T) {
	c := createTestCaterer(t)

	require.NoError(t, c.Suspend())
	assert.Error(t, c.Suspend())
	assert.False(t, c.IsActive())

	require.NoError(t, c.Activate())
	require.NoError(t, c.Deactivate())
	assert.Equal(t, CatererStatusInactive, c.Status)
}

func TestCaterer_SetDeliveryAddress(t *testing.T) {
	c := createTestCaterer(t)
	require.NoError(t, c.SetDeliveryAddress("12 Market Road", "Kochi"))
	assert.Equal(t, "Kochi", c.City)
}
