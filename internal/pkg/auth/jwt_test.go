package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhuggee/marketplace-backend/internal/config"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Marketplace Backend"},
		JWT: config.JWTConfig{
			Secret:      secret,
			TokenExpiry: 7 * 24 * time.Hour,
			CookieName:  "jh_token",
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret-key-that-is-long-enough"))

	token, err := manager.GenerateToken(7, "9876543210", "buyer@example.com", RoleBuyer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "9876543210", claims.Phone)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, RoleBuyer, claims.Role)
	assert.Equal(t, "user:7", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager(testConfig("test-secret-key-that-is-long-enough"))
	verifier := NewJWTManager(testConfig("a-completely-different-secret-key!!"))

	token, err := issuer.GenerateToken(1, "9876543210", "", RoleBuyer)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testConfig("test-secret-key-that-is-long-enough")
	cfg.JWT.TokenExpiry = -time.Hour
	manager := NewJWTManager(cfg)

	token, err := manager.GenerateToken(1, "9876543210", "", RoleBuyer)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMissingRole(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret-key-that-is-long-enough"))

	token, err := manager.GenerateToken(1, "9876543210", "", "")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := NewJWTManager(testConfig("test-secret-key-that-is-long-enough"))
	_, err := manager.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}
