package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdmin(t *testing.T) {
	t.Run("creates active admin with hashed password", func(t *testing.T) {
		admin, err := NewAdmin("Store-Admin", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "store-admin", admin.Username, "username is normalized to lowercase")
		assert.True(t, admin.IsActive)
		assert.NotEqual(t, "secret123", admin.PasswordHash)
		assert.True(t, admin.VerifyPassword("secret123"))
		assert.False(t, admin.VerifyPassword("wrong-pass1"))
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewAdmin("ab", "secret123")
		assert.Error(t, err)
	})

	t.Run("rejects invalid username characters", func(t *testing.T) {
		_, err := NewAdmin("admin!", "secret123")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewAdmin("admin", "short")
		assert.Error(t, err)
	})
}

func TestAdminChangePassword(t *testing.T) {
	admin, err := NewAdmin("admin", "original1")
	require.NoError(t, err)

	t.Run("requires correct current password", func(t *testing.T) {
		err := admin.ChangePassword("wrong-pass", "updated12")
		assert.Error(t, err)
		assert.True(t, admin.VerifyPassword("original1"))
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		err := admin.ChangePassword("original1", "updated12")
		require.NoError(t, err)
		assert.True(t, admin.VerifyPassword("updated12"))
		assert.False(t, admin.VerifyPassword("original1"))
	})
}

func TestAdminLockout(t *testing.T) {
	admin, err := NewAdmin("admin", "secret123")
	require.NoError(t, err)

	locked := admin.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = admin.RecordLoginFailure(3, time.Hour)
	assert.False(t, locked)
	locked = admin.RecordLoginFailure(3, time.Hour)
	assert.True(t, locked)

	assert.True(t, admin.IsLocked())
	assert.False(t, admin.CanLogin())

	admin.RecordLoginSuccess()
	assert.False(t, admin.IsLocked())
	assert.Equal(t, 0, admin.FailedAttempts)
	assert.NotNil(t, admin.LastLoginAt)
	assert.True(t, admin.CanLogin())
}

func TestAdminActivation(t *testing.T) {
	admin, err := NewAdmin("admin", "secret123")
	require.NoError(t, err)

	require.NoError(t, admin.Deactivate())
	assert.False(t, admin.CanLogin())
	assert.Error(t, admin.Deactivate())

	require.NoError(t, admin.Activate())
	assert.True(t, admin.CanLogin())
	assert.Error(t, admin.Activate())
}
