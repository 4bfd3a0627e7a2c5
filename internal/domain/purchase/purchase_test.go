package purchase

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

func createTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase("PB-2026-001", uuid.New(), "Malabar Spice Traders", time.Now())
	require.NoError(t, err)
	return p
}

func addTestItem(t *testing.T, p *Purchase, name string, qty, rate, gst string) *LineItem {
	t.Helper()
	item, err := p.AddItem(nil, name, d(qty), valueobject.UnitKg, d(rate), d(gst))
	require.NoError(t, err)
	return item
}

// ============================================
// PurchaseStatus Tests
// ============================================

func TestPurchaseStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  PurchaseStatus
		isValid bool
	}{
		{PurchaseStatusDraft, true},
		{PurchaseStatusSubmitted, true},
		{PurchaseStatusReceived, true},
		{PurchaseStatusCancelled, true},
		{PurchaseStatus("INVALID"), false},
		{PurchaseStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPurchaseStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PurchaseStatus
		to       PurchaseStatus
		canTrans bool
	}{
		{PurchaseStatusDraft, PurchaseStatusSubmitted, true},
		{PurchaseStatusDraft, PurchaseStatusCancelled, true},
		{PurchaseStatusDraft, PurchaseStatusReceived, false},
		{PurchaseStatusSubmitted, PurchaseStatusReceived, true},
		{PurchaseStatusSubmitted, PurchaseStatusCancelled, true},
		{PurchaseStatusSubmitted, PurchaseStatusDraft, false},
		{PurchaseStatusReceived, PurchaseStatusCancelled, false},
		{PurchaseStatusCancelled, PurchaseStatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Purchase Aggregate Tests
// ============================================

func TestNewPurchase(t *testing.T) {
	p := createTestPurchase(t)
	assert.Equal(t, PurchaseStatusDraft, p.Status)
	assert.Empty(t, p.Items)
	assert.True(t, p.GrandTotal.IsZero())
	assert.Equal(t, 1, p.GetVersion())
}

func TestNewPurchase_Validation(t *testing.T) {
	_, err := NewPurchase("", uuid.New(), "Supplier", time.Now())
	assert.Error(t, err)

	_, err = NewPurchase("PB-001", uuid.Nil, "Supplier", time.Now())
	assert.Error(t, err)

	_, err = NewPurchase("PB-001", uuid.New(), "", time.Now())
	assert.Error(t, err)
}

func TestPurchase_AddItem_RecalculatesTotals(t *testing.T) {
	p := createTestPurchase(t)

	addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")
	assert.Equal(t, "500.00", p.TotalAmount.StringFixed(2))
	assert.Equal(t, "90.00", p.TotalGSTAmount.StringFixed(2))
	assert.Equal(t, "590.00", p.GrandTotal.StringFixed(2))

	addTestItem(t, p, "Red Chilli", "2", "50.00", "18")
	assert.Equal(t, "600.00", p.TotalAmount.StringFixed(2))
	assert.Equal(t, "108.00", p.TotalGSTAmount.StringFixed(2))
	assert.Equal(t, "708.00", p.GrandTotal.StringFixed(2))
}

func TestPurchase_AddItem_RequiresName(t *testing.T) {
	p := createTestPurchase(t)

	_, err := p.AddItem(nil, "  ", d("1"), valueobject.UnitKg, d("10"), d("18"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ITEM_NAME_REQUIRED", domainErr.Code)
	assert.Empty(t, p.Items)
}

func TestPurchase_AddItem_RejectsUnknownUnit(t *testing.T) {
	p := createTestPurchase(t)
	_, err := p.AddItem(nil, "Cloves", d("1"), valueobject.UnitCode("tonne"), d("10"), d("18"))
	assert.Error(t, err)
}

func TestPurchase_UpdateItem(t *testing.T) {
	p := createTestPurchase(t)
	item := addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")

	require.NoError(t, p.UpdateItem(item.ID, d("5"), d("40.00"), d("12")))

	updated := p.GetItem(item.ID)
	require.NotNil(t, updated)
	assert.Equal(t, "24.00", updated.GSTAmount.StringFixed(2)) // 200 * 12%
	assert.Equal(t, "224.00", updated.Amount.StringFixed(2))
	assert.Equal(t, "224.00", p.GrandTotal.StringFixed(2))
}

func TestPurchase_UpdateItem_NotFound(t *testing.T) {
	p := createTestPurchase(t)
	err := p.UpdateItem(uuid.New(), d("1"), d("1"), d("0"))
	assert.Error(t, err)
}

func TestPurchase_ChangeItemUnit(t *testing.T) {
	p := createTestPurchase(t)
	item := addTestItem(t, p, "Saffron", "2", "100.00", "5")

	// 2 kg -> 2000 g; rate stays per-unit so amounts shift with the quantity
	require.NoError(t, p.ChangeItemUnit(item.ID, valueobject.UnitG))

	changed := p.GetItem(item.ID)
	require.NotNil(t, changed)
	assert.Equal(t, valueobject.UnitG, changed.Unit)
	assert.True(t, decimal.NewFromInt(2000).Equal(changed.Quantity))
	assert.Equal(t, "200000.00", changed.PreTaxAmount().StringFixed(2))
}

func TestPurchase_ChangeItemUnit_CrossFamilyRejected(t *testing.T) {
	p := createTestPurchase(t)
	item := addTestItem(t, p, "Saffron", "2", "100.00", "5")
	before := p.GrandTotal

	err := p.ChangeItemUnit(item.ID, valueobject.UnitL)
	require.Error(t, err)
	assert.Equal(t, shared.ErrIncompatibleUnits, err)

	// The line is untouched after a rejected conversion
	unchanged := p.GetItem(item.ID)
	assert.Equal(t, valueobject.UnitKg, unchanged.Unit)
	assert.True(t, decimal.NewFromInt(2).Equal(unchanged.Quantity))
	assert.True(t, before.Equal(p.GrandTotal))
}

func TestPurchase_RemoveItem(t *testing.T) {
	p := createTestPurchase(t)
	first := addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")
	addTestItem(t, p, "Red Chilli", "2", "50.00", "18")

	require.NoError(t, p.RemoveItem(first.ID))
	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, "118.00", p.GrandTotal.StringFixed(2))
	assert.Equal(t, 0, p.Items[0].SortOrder)
}

func TestPurchase_Submit(t *testing.T) {
	p := createTestPurchase(t)
	addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")

	require.NoError(t, p.Submit())
	assert.Equal(t, PurchaseStatusSubmitted, p.Status)
	assert.NotNil(t, p.SubmittedAt)
}

func TestPurchase_Submit_NoQualifyingItems(t *testing.T) {
	p := createTestPurchase(t)

	err := p.Submit()
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ITEMS", domainErr.Code)
	assert.Equal(t, "No items to purchase", domainErr.Message)
	assert.Equal(t, PurchaseStatusDraft, p.Status)
}

func TestPurchase_Submit_InvalidRateNamesItem(t *testing.T) {
	p := createTestPurchase(t)
	addTestItem(t, p, "Star Anise", "2", "0", "18")

	err := p.Submit()
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RATE", domainErr.Code)
	assert.Equal(t, "Invalid rate for Star Anise", domainErr.Message)

	// Entered data survives the failed submission
	assert.Equal(t, 1, p.ItemCount())
	assert.Equal(t, PurchaseStatusDraft, p.Status)
}

func TestPurchase_Submit_InvalidQuantityNamesItem(t *testing.T) {
	p := createTestPurchase(t)
	addTestItem(t, p, "Bay Leaf", "-1", "30", "5")

	err := p.Submit()
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	assert.Equal(t, "Invalid quantity for Bay Leaf", domainErr.Message)
}

func TestPurchase_MarkReceived(t *testing.T) {
	p := createTestPurchase(t)
	addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")
	require.NoError(t, p.Submit())

	require.NoError(t, p.MarkReceived())
	assert.Equal(t, PurchaseStatusReceived, p.Status)
	assert.NotNil(t, p.ReceivedAt)

	// Terminal: nothing further is allowed
	assert.Error(t, p.Cancel("late"))
	assert.Error(t, p.Submit())
}

func TestPurchase_Cancel(t *testing.T) {
	p := createTestPurchase(t)
	addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")

	require.Error(t, p.Cancel(""))
	require.NoError(t, p.Cancel("ordered by mistake"))
	assert.Equal(t, PurchaseStatusCancelled, p.Status)
	assert.Equal(t, "ordered by mistake", p.CancelReason)
}

func TestPurchase_ModificationsBlockedAfterSubmit(t *testing.T) {
	p := createTestPurchase(t)
	item := addTestItem(t, p, "Turmeric Powder", "10", "50.00", "18")
	require.NoError(t, p.Submit())

	_, err := p.AddItem(nil, "Nutmeg", d("1"), valueobject.UnitKg, d("10"), d("18"))
	assert.Error(t, err)
	assert.Error(t, p.UpdateItem(item.ID, d("1"), d("1"), d("0")))
	assert.Error(t, p.RemoveItem(item.ID))
	assert.Error(t, p.ChangeItemUnit(item.ID, valueobject.UnitG))
}
