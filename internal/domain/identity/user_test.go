package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("Asha.K", "spice-rack-9", RoleStaff)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := createTestUser(t)
	assert.Equal(t, "asha.k", u.Username)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.True(t, u.VerifyPassword("spice-rack-9"))
	assert.False(t, u.VerifyPassword("wrong"))
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("ab", "longenough1", RoleStaff)
	assert.Error(t, err)

	_, err = NewUser("valid.user", "short", RoleStaff)
	assert.Error(t, err)

	_, err = NewUser("valid.user", "longenough1", UserRole("admin"))
	assert.Error(t, err)
}

func TestUser_ChangePassword(t *testing.T) {
	u := createTestUser(t)

	assert.Error(t, u.ChangePassword("wrong-old", "new-password-1"))
	require.NoError(t, u.ChangePassword("spice-rack-9", "new-password-1"))
	assert.True(t, u.VerifyPassword("new-password-1"))
	assert.False(t, u.VerifyPassword("spice-rack-9"))
}

func TestUser_LockAfterFailedLogins(t *testing.T) {
	u := createTestUser(t)

	for i := 0; i < maxFailedAttempts; i++ {
		u.RecordFailedLogin()
	}
	assert.Equal(t, UserStatusLocked, u.Status)
	assert.False(t, u.CanLogin())

	require.NoError(t, u.Unlock())
	assert.Equal(t, 0, u.FailedAttempts)
	assert.True(t, u.CanLogin())
}

func TestUser_RecordLogin_ClearsFailedAttempts(t *testing.T) {
	u := createTestUser(t)
	u.RecordFailedLogin()
	u.RecordFailedLogin()

	u.RecordLogin()
	assert.Equal(t, 0, u.FailedAttempts)
	assert.NotNil(t, u.LastLoginAt)
}

func TestUser_DeactivateActivate(t *testing.T) {
	u := createTestUser(t)

	require.NoError(t, u.Deactivate())
	assert.False(t, u.CanLogin())
	assert.Error(t, u.Deactivate())

	require.NoError(t, u.Activate())
	assert.True(t, u.CanLogin())
}

func TestUser_IsOwner(t *testing.T) {
	owner, err := NewUser("owner", "longenough1", RoleOwner)
	require.NoError(t, err)
	assert.True(t, owner.IsOwner())
	assert.False(t, createTestUser(t).IsOwner())
}
