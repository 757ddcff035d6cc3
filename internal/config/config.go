// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fxwallet/pkg/db" // Import db package for its Config struct
)

// Rate provider backends.
const (
	ProviderExchangeRateAPI = "exchangerate-api"
	ProviderNBP             = "nbp"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	JWTSecret string

	// RateProvider selects the rate feed backend.
	RateProvider       string
	ExchangeRateAPIURL string
	NBPAPIURL          string
	// RateCacheTTL of 0 disables the in-process rate cache.
	RateCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables, with an
// optional .env file for local development.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	serverPort := envOrDefault("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(envOrDefault("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	rateProvider := envOrDefault("RATE_PROVIDER", ProviderExchangeRateAPI)
	if rateProvider != ProviderExchangeRateAPI && rateProvider != ProviderNBP {
		return nil, fmt.Errorf("invalid RATE_PROVIDER %q", rateProvider)
	}

	rateCacheTTL := time.Duration(0)
	if ttlStr := os.Getenv("RATE_CACHE_TTL"); ttlStr != "" {
		rateCacheTTL, err = time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_CACHE_TTL: %w", err)
		}
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     envOrDefault("DB_USER", "user"),
			Password: envOrDefault("DB_PASSWORD", "password"),
			DBName:   envOrDefault("DB_NAME", "fxwalletdb"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
		JWTSecret:          envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		RateProvider:       rateProvider,
		ExchangeRateAPIURL: os.Getenv("EXCHANGE_RATE_API_URL"),
		NBPAPIURL:          os.Getenv("NBP_API_URL"),
		RateCacheTTL:       rateCacheTTL,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
