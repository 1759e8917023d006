package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuggee/marketplace-backend/internal/config"
)

func testPasswordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4},
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := testPasswordManager()

	hash, err := pm.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.NoError(t, pm.VerifyPassword("correct horse battery", hash))
	assert.Error(t, pm.VerifyPassword("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	pm := testPasswordManager()

	assert.NoError(t, pm.ValidatePassword("12345678"))
	assert.Error(t, pm.ValidatePassword("short"))
	assert.Error(t, pm.ValidatePassword(""))
}
