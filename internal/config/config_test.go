package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
			Name: "marketplace",
			User: "postgres",
		},
		Redis: RedisConfig{Host: "localhost", Port: "6379"},
		JWT:   JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Checkout: CheckoutConfig{
			FreeDeliveryThreshold: 199,
			DeliveryCharge:        49,
			DeliveryLeadDays:      5,
			MaxAddresses:          3,
		},
		Cashfree: CashfreeConfig{Environment: "sandbox"},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "too-short"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeCheckoutAmounts(t *testing.T) {
	cfg := validConfig()
	cfg.Checkout.DeliveryCharge = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadCashfreeEnvironment(t *testing.T) {
	cfg := validConfig()
	cfg.Cashfree.Environment = "staging"
	assert.Error(t, cfg.Validate())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestGetDatabaseDSN(t *testing.T) {
	dsn := validConfig().GetDatabaseDSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=marketplace")
}

func TestGetRedisAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", validConfig().GetRedisAddr())
}
