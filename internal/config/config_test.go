package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "sekrit")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "sekrit", cfg.JWTSecret)
	})

	t.Run("Checkout policy defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")

		cfg := LoadConfig()

		assert.Equal(t, float64(1999), cfg.Checkout.FreeShippingThreshold)
		assert.Equal(t, float64(99), cfg.Checkout.ShippingFee)
		assert.False(t, cfg.Checkout.RequireManualConfirmation)
	})

	t.Run("Checkout policy overrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("FREE_SHIPPING_THRESHOLD", "999")
		t.Setenv("SHIPPING_FEE", "49")
		t.Setenv("MANUAL_ORDER_CONFIRMATION", "true")

		cfg := LoadConfig()

		assert.Equal(t, float64(999), cfg.Checkout.FreeShippingThreshold)
		assert.Equal(t, float64(49), cfg.Checkout.ShippingFee)
		assert.True(t, cfg.Checkout.RequireManualConfirmation)
	})
}
