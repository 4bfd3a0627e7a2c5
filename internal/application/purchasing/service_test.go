package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/purchase"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPurchaseRepository is a mock implementation of purchase.Repository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByBillNumber(ctx context.Context, billNumber string) (*purchase.Purchase, error) {
	args := m.Called(ctx, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.Purchase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchase.Purchase, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, p *purchase.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) ExistsByBillNumber(ctx context.Context, billNumber string) (bool, error) {
	args := m.Called(ctx, billNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) GenerateBillNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseRepository) SummarizeByMonth(ctx context.Context, from, to time.Time) ([]purchase.MonthlySummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.MonthlySummary), args.Error(1)
}

func (m *MockPurchaseRepository) TopSuppliersBySpend(ctx context.Context, from, to time.Time, limit int) ([]purchase.SupplierSpend, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchase.SupplierSpend), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindActive(ctx context.Context) ([]partner.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindShowcased(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockStockBatchRepository is a mock implementation of catalog.StockBatchRepository
type MockStockBatchRepository struct {
	mock.Mock
}

func (m *MockStockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StockBatch, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]catalog.StockBatch, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindAvailableByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StockBatch, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) Save(ctx context.Context, batch *catalog.StockBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockStockBatchRepository) SaveAll(ctx context.Context, batches []*catalog.StockBatch) error {
	args := m.Called(ctx, batches)
	return args.Error(0)
}

func (m *MockStockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type serviceFixture struct {
	purchaseRepo *MockPurchaseRepository
	supplierRepo *MockSupplierRepository
	productRepo  *MockProductRepository
	batchRepo    *MockStockBatchRepository
	service      *Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		purchaseRepo: new(MockPurchaseRepository),
		supplierRepo: new(MockSupplierRepository),
		productRepo:  new(MockProductRepository),
		batchRepo:    new(MockStockBatchRepository),
	}
	f.service = NewService(f.purchaseRepo, f.supplierRepo, f.productRepo, f.batchRepo,
		decimal.NewFromInt(18), zap.NewNop())
	return f
}

func testSupplier(t *testing.T) *partner.Supplier {
	t.Helper()
	s, err := partner.NewSupplier("SUP-001", "Malabar Spice Traders", partner.SupplierTypeWholesaler)
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func TestService_Create_DerivesAmounts(t *testing.T) {
	f := newServiceFixture(t)
	supplier := testSupplier(t)

	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.purchaseRepo.On("GenerateBillNumber", mock.Anything).Return("PB-2026-001", nil)
	f.purchaseRepo.On("Save", mock.Anything, mock.AnythingOfType("*purchase.Purchase")).Return(nil)

	resp, err := f.service.Create(context.Background(), CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []CreatePurchaseItemInput{
			{ItemName: "Turmeric Powder", Quantity: "10", Unit: "kg", Rate: "50.00"},
			{ItemName: "Red Chilli", Quantity: "2", Unit: "kg", Rate: "50.00"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "600", resp.TotalAmount.String())
	assert.Equal(t, "108", resp.TotalGSTAmount.String())
	assert.Equal(t, "708", resp.GrandTotal.String())
	f.purchaseRepo.AssertExpectations(t)
}

func TestService_Create_UnparseableInputCoercesToZero(t *testing.T) {
	f := newServiceFixture(t)
	supplier := testSupplier(t)

	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.purchaseRepo.On("GenerateBillNumber", mock.Anything).Return("PB-2026-002", nil)
	f.purchaseRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Create(context.Background(), CreatePurchaseRequest{
		SupplierID: supplier.ID,
		Items: []CreatePurchaseItemInput{
			{ItemName: "Turmeric Powder", Quantity: "abc", Unit: "kg", Rate: "12."},
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.GrandTotal.IsZero())
}

func TestService_Create_BlockedSupplierRejected(t *testing.T) {
	f := newServiceFixture(t)
	supplier := testSupplier(t)
	require.NoError(t, supplier.Block())

	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

	_, err := f.service.Create(context.Background(), CreatePurchaseRequest{SupplierID: supplier.ID})
	assert.Error(t, err)
	f.purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Submit_ValidationFailurePersistsNothing(t *testing.T) {
	f := newServiceFixture(t)
	supplier := testSupplier(t)

	p, err := purchase.NewPurchase("PB-2026-003", supplier.ID, supplier.Name, time.Now())
	require.NoError(t, err)
	_, err = p.AddItem(nil, "Star Anise", decimal.NewFromInt(2), valueobject.UnitKg, decimal.Zero, decimal.NewFromInt(18))
	require.NoError(t, err)

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = f.service.Submit(context.Background(), p.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_RATE", domainErr.Code)
	assert.Equal(t, "Invalid rate for Star Anise", domainErr.Message)

	// Nothing was persisted and the draft survives with its data
	f.purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, purchase.PurchaseStatusDraft, p.Status)
	assert.Equal(t, 1, p.ItemCount())
}

func TestService_Submit_EmptyDraftRejected(t *testing.T) {
	f := newServiceFixture(t)

	p, err := purchase.NewPurchase("PB-2026-004", uuid.New(), "Supplier", time.Now())
	require.NoError(t, err)

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = f.service.Submit(context.Background(), p.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "No items to purchase", domainErr.Message)
}

func TestService_Receive_CreatesBatchesInBaseUnit(t *testing.T) {
	f := newServiceFixture(t)
	supplier := testSupplier(t)

	product, err := catalog.NewProduct("TURMERIC", "Turmeric Powder", valueobject.UnitG)
	require.NoError(t, err)
	productID := product.ID

	p, err := purchase.NewPurchase("PB-2026-005", supplier.ID, supplier.Name, time.Now())
	require.NoError(t, err)
	_, err = p.AddItem(&productID, "Turmeric Powder", decimal.NewFromInt(2), valueobject.UnitKg, decimal.NewFromInt(500), decimal.NewFromInt(18))
	require.NoError(t, err)
	require.NoError(t, p.Submit())

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.purchaseRepo.On("Save", mock.Anything, p).Return(nil)
	f.productRepo.On("FindByID", mock.Anything, productID).Return(product, nil)
	f.productRepo.On("Save", mock.Anything, product).Return(nil)
	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.supplierRepo.On("Save", mock.Anything, supplier).Return(nil)
	f.batchRepo.On("SaveAll", mock.Anything, mock.MatchedBy(func(batches []*catalog.StockBatch) bool {
		return len(batches) == 1 &&
			batches[0].Quantity.Equal(decimal.NewFromInt(2000)) &&
			batches[0].Unit == valueobject.UnitG
	})).Return(nil)

	resp, err := f.service.Receive(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(purchase.PurchaseStatusReceived), resp.Status)

	// 2 kg became 2000 g of stock, payable balance went up by the grand total
	assert.True(t, decimal.NewFromInt(2000).Equal(product.StockOnHand))
	assert.Equal(t, "1180.00", supplier.Balance.StringFixed(2))
	f.batchRepo.AssertExpectations(t)
}

func TestService_Receive_RequiresSubmittedStatus(t *testing.T) {
	f := newServiceFixture(t)

	p, err := purchase.NewPurchase("PB-2026-006", uuid.New(), "Supplier", time.Now())
	require.NoError(t, err)

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = f.service.Receive(context.Background(), p.ID)
	assert.Error(t, err)
}

func TestService_UpdateItem_PartialFieldsRecalculate(t *testing.T) {
	f := newServiceFixture(t)

	p, err := purchase.NewPurchase("PB-2026-007", uuid.New(), "Supplier", time.Now())
	require.NoError(t, err)
	item, err := p.AddItem(nil, "Turmeric Powder", decimal.NewFromInt(10), valueobject.UnitKg, decimal.NewFromInt(50), decimal.NewFromInt(18))
	require.NoError(t, err)

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.purchaseRepo.On("Save", mock.Anything, p).Return(nil)

	resp, err := f.service.UpdateItem(context.Background(), p.ID, item.ID, UpdatePurchaseItemRequest{
		Rate: strPtr("60.00"),
	})
	require.NoError(t, err)

	// quantity and gst untouched, rate changed, totals re-derived
	assert.Equal(t, "600.00", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, "108.00", resp.TotalGSTAmount.StringFixed(2))
	assert.Equal(t, "708.00", resp.GrandTotal.StringFixed(2))
}

func TestService_ChangeItemUnit_CrossFamilyLeavesLineUntouched(t *testing.T) {
	f := newServiceFixture(t)

	p, err := purchase.NewPurchase("PB-2026-008", uuid.New(), "Supplier", time.Now())
	require.NoError(t, err)
	item, err := p.AddItem(nil, "Saffron", decimal.NewFromInt(2), valueobject.UnitKg, decimal.NewFromInt(100), decimal.NewFromInt(5))
	require.NoError(t, err)

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = f.service.ChangeItemUnit(context.Background(), p.ID, item.ID, ChangeItemUnitRequest{Unit: "l"})
	require.Error(t, err)
	assert.Equal(t, shared.ErrIncompatibleUnits, err)
	assert.Equal(t, valueobject.UnitKg, p.GetItem(item.ID).Unit)
	f.purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_PreviewLine_UsesDefaultGST(t *testing.T) {
	f := newServiceFixture(t)

	resp := f.service.PreviewLine(PreviewLineRequest{Quantity: "10", Rate: "50.00"})
	assert.Equal(t, "90.00", resp.GSTAmount.StringFixed(2))
	assert.Equal(t, "590.00", resp.Amount.StringFixed(2))

	resp = f.service.PreviewLine(PreviewLineRequest{Quantity: "10", Rate: "50.00", GSTPercentage: strPtr("0")})
	assert.Equal(t, "0.00", resp.GSTAmount.StringFixed(2))
	assert.Equal(t, "500.00", resp.Amount.StringFixed(2))
}

func TestService_Delete_OnlyDrafts(t *testing.T) {
	f := newServiceFixture(t)

	p, err := purchase.NewPurchase("PB-2026-009", uuid.New(), "Supplier", time.Now())
	require.NoError(t, err)
	_, err = p.AddItem(nil, "Cumin", decimal.NewFromInt(1), valueobject.UnitKg, decimal.NewFromInt(100), decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, p.Submit())

	f.purchaseRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	err = f.service.Delete(context.Background(), p.ID)
	assert.Error(t, err)
	f.purchaseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
