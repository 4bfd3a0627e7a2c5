package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSupplier(t *testing.T) *Supplier {
	t.Helper()
	s, err := NewSupplier("sup-001", "Malabar Spice Traders", SupplierTypeWholesaler)
	require.NoError(t, err)
	return s
}

func TestNewSupplier(t *testing.T) {
	s := createTestSupplier(t)
	assert.Equal(t, "SUP-001", s.Code)
	assert.Equal(t, SupplierStatusActive, s.Status)
	assert.True(t, s.Balance.IsZero())
}

func TestNewSupplier_Validation(t *testing.T) {
	_, err := NewSupplier("", "Name", SupplierTypeWholesaler)
	assert.Error(t, err)

	_, err = NewSupplier("bad code!", "Name", SupplierTypeWholesaler)
	assert.Error(t, err)

	_, err = NewSupplier("SUP-001", "", SupplierTypeWholesaler)
	assert.Error(t, err)

	_, err = NewSupplier("SUP-001", "Name", SupplierType("importer"))
	assert.Error(t, err)
}

func TestSupplier_SetContact(t *testing.T) {
	s := createTestSupplier(t)

	require.NoError(t, s.SetContact("Ravi", "+91 98450 12345", "ravi@malabarspice.in"))
	assert.Equal(t, "Ravi", s.ContactName)

	assert.Error(t, s.SetContact("Ravi", "not-a-phone#", ""))
	assert.Error(t, s.SetContact("Ravi", "", "not-an-email"))
}

func TestSupplier_SetGSTIN(t *testing.T) {
	s := createTestSupplier(t)

	require.NoError(t, s.SetGSTIN("32abcde1234f1z5"))
	assert.Equal(t, "32ABCDE1234F1Z5", s.GSTIN)

	assert.Error(t, s.SetGSTIN("INVALID"))
	require.NoError(t, s.SetGSTIN("")) // clearing is fine
}

func TestSupplier_SetPaymentTerms(t *testing.T) {
	s := createTestSupplier(t)

	require.NoError(t, s.SetPaymentTerms(30, decimal.NewFromInt(50000)))
	assert.True(t, s.HasCreditTerms())

	assert.Error(t, s.SetPaymentTerms(-1, decimal.Zero))
	assert.Error(t, s.SetPaymentTerms(400, decimal.Zero))
	assert.Error(t, s.SetPaymentTerms(30, decimal.NewFromInt(-1)))
}

func TestSupplier_Balance(t *testing.T) {
	s := createTestSupplier(t)

	require.NoError(t, s.AddBalance(decimal.NewFromInt(1000)))
	require.NoError(t, s.DeductBalance(decimal.NewFromInt(400)))
	assert.True(t, decimal.NewFromInt(600).Equal(s.Balance))

	assert.Error(t, s.DeductBalance(decimal.NewFromInt(700)))
	assert.Error(t, s.AddBalance(decimal.Zero))
}

func TestSupplier_AvailableCredit(t *testing.T) {
	s := createTestSupplier(t)
	require.NoError(t, s.SetPaymentTerms(30, decimal.NewFromInt(10000)))
	require.NoError(t, s.AddBalance(decimal.NewFromInt(4000)))

	assert.True(t, decimal.NewFromInt(6000).Equal(s.GetAvailableCredit()))

	require.NoError(t, s.AddBalance(decimal.NewFromInt(7000)))
	assert.True(t, s.GetAvailableCredit().IsZero())
}

func TestSupplier_StatusTransitions(t *testing.T) {
	s := createTestSupplier(t)

	assert.Error(t, s.Activate()) // already active
	require.NoError(t, s.Deactivate())
	assert.False(t, s.IsActive())

	require.NoError(t, s.Block())
	assert.True(t, s.IsBlocked())
	require.NoError(t, s.Activate())
	assert.True(t, s.IsActive())
}
