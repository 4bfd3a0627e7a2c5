package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/identity"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(user *identity.User, sessionID string) (*IssuedToken, error) {
	args := m.Called(user, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IssuedToken), args.Error(1)
}

func newTestUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("asha", password, identity.RoleOwner)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	svc := NewAuthService(repo, issuer, zap.NewNop())

	user := newTestUser(t, "spice-rack-9")
	issued := &IssuedToken{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}

	repo.On("FindByUsername", mock.Anything, "asha").Return(user, nil)
	issuer.On("Issue", user, mock.AnythingOfType("string")).Return(issued, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "spice-rack-9"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "asha", resp.User.Username)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	svc := NewAuthService(repo, issuer, zap.NewNop())

	user := newTestUser(t, "spice-rack-9")

	repo.On("FindByUsername", mock.Anything, "asha").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "wrong"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestAuthService_Login_LocksAfterRepeatedFailures(t *testing.T) {
	repo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	svc := NewAuthService(repo, issuer, zap.NewNop())

	user := newTestUser(t, "spice-rack-9")

	repo.On("FindByUsername", mock.Anything, "asha").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "wrong"})
	}

	var domainErr *shared.DomainError
	require.ErrorAs(t, lastErr, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
	assert.Equal(t, identity.UserStatusLocked, user.Status)

	// Correct password no longer works on a locked account
	_, err := svc.Login(context.Background(), LoginRequest{Username: "asha", Password: "spice-rack-9"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	svc := NewAuthService(repo, issuer, zap.NewNop())

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	// Unknown users get the same error as a wrong password
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	issuer := new(MockTokenIssuer)
	svc := NewAuthService(repo, issuer, zap.NewNop())

	user := newTestUser(t, "spice-rack-9")

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		OldPassword: "spice-rack-9",
		NewPassword: "cardamom-hills-7",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("cardamom-hills-7"))
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	repo.On("ExistsByUsername", mock.Anything, "asha").Return(true, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "asha", Password: "spice-rack-9", Role: "staff",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "DUPLICATE_USERNAME", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Unlock(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	user := newTestUser(t, "spice-rack-9")
	for i := 0; i < 5; i++ {
		user.RecordFailedLogin()
	}
	require.Equal(t, identity.UserStatusLocked, user.Status)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	err := svc.Unlock(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, identity.UserStatusActive, user.Status)
	assert.Equal(t, 0, user.FailedAttempts)
}
