package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spicetrade/backend/internal/domain/partner"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

func TestSupplierService_Create(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	repo.On("ExistsByCode", mock.Anything, "SUP-001").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateSupplierRequest{
		Code:  "SUP-001",
		Name:  "Malabar Spice Traders",
		Type:  "wholesaler",
		GSTIN: "32ABCDE1234F1Z5",
	})

	require.NoError(t, err)
	assert.Equal(t, "SUP-001", resp.Code)
	assert.Equal(t, "32ABCDE1234F1Z5", resp.GSTIN)
	repo.AssertExpectations(t)
}

func TestSupplierService_Create_DuplicateCode(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	repo.On("ExistsByCode", mock.Anything, "SUP-001").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateSupplierRequest{
		Code: "SUP-001", Name: "Name", Type: "wholesaler",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_CODE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSupplierService_Update_PartialFields(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	supplier, err := partner.NewSupplier("SUP-001", "Old Name", partner.SupplierTypeWholesaler)
	require.NoError(t, err)
	require.NoError(t, supplier.SetContact("Ravi", "+91 98450 12345", ""))

	repo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	repo.On("Save", mock.Anything, supplier).Return(nil)

	newName := "Malabar Spice Traders"
	resp, err := svc.Update(context.Background(), supplier.ID, UpdateSupplierRequest{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
	// Untouched fields survive
	assert.Equal(t, "Ravi", resp.ContactName)
	assert.Equal(t, "+91 98450 12345", resp.Phone)
}

func TestSupplierService_Delete_BlockedByBalance(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())

	supplier, err := partner.NewSupplier("SUP-001", "Name", partner.SupplierTypeWholesaler)
	require.NoError(t, err)
	require.NoError(t, supplier.AddBalance(decimal.NewFromInt(500)))

	repo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

	err = svc.Delete(context.Background(), supplier.ID)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
