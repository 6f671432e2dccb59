package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	Checkout CheckoutPolicy
}

// CheckoutPolicy holds the pricing and confirmation knobs used by the order
// workflow. Carts whose subtotal exceeds FreeShippingThreshold ship free,
// everything else pays the flat ShippingFee. When RequireManualConfirmation
// is set, new orders start in PENDING instead of CONFIRMED.
type CheckoutPolicy struct {
	FreeShippingThreshold     float64
	ShippingFee               float64
	RequireManualConfirmation bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Checkout: CheckoutPolicy{
			FreeShippingThreshold:     envFloat("FREE_SHIPPING_THRESHOLD", 1999),
			ShippingFee:               envFloat("SHIPPING_FEE", 99),
			RequireManualConfirmation: envBool("MANUAL_ORDER_CONFIRMATION", false),
		},
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return v
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return v
}
