package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("Asha", "asha@example.com", "s3cret-pass")
		require.NoError(t, err)

		assert.Equal(t, "asha", user.Username)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.False(t, user.IsStaff)
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "", "s3cret-pass")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3 characters")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("asha", "", "short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})
}

func TestCheckPassword(t *testing.T) {
	user, err := NewUser("asha", "", "s3cret-pass")
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestRecordLogin(t *testing.T) {
	user, err := NewUser("asha", "", "s3cret-pass")
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}
