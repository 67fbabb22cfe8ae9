package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names for the upstream credentials. Only the names
// are ever reported back to callers.
const (
	EnvStripeSecretKey = "STRIPE_SECRET_KEY"
	EnvStreamAPIKey    = "STREAM_API_KEY"
	EnvStreamAPISecret = "STREAM_API_SECRET"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Stripe      StripeConfig
	Stream      StreamConfig
	Logging     LoggingConfig
}

// StripeConfig holds payment processor configuration
type StripeConfig struct {
	SecretKey       string
	APIURL          string // empty means the processor's public endpoint
	DefaultCurrency string
}

// StreamConfig holds messaging platform configuration
type StreamConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
	TokenTTL  time.Duration // zero issues tokens without expiry
}

// LoggingConfig controls structured logging settings
type LoggingConfig struct {
	Level  string
	Format string // text|json
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PAYMENT_DEFAULT_CURRENCY", "aed")
	v.SetDefault("STREAM_TOKEN_TTL", "24h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("STREAM_TOKEN_TTL")))
	if err != nil {
		return nil, fmt.Errorf("invalid STREAM_TOKEN_TTL: %w", err)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("invalid STREAM_TOKEN_TTL: must not be negative")
	}

	currency := strings.ToLower(strings.TrimSpace(v.GetString("PAYMENT_DEFAULT_CURRENCY")))
	if currency == "" {
		currency = "aed"
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Stripe: StripeConfig{
			SecretKey:       strings.TrimSpace(v.GetString(EnvStripeSecretKey)),
			APIURL:          v.GetString("STRIPE_API_URL"),
			DefaultCurrency: currency,
		},
		Stream: StreamConfig{
			APIKey:    strings.TrimSpace(v.GetString(EnvStreamAPIKey)),
			APISecret: strings.TrimSpace(v.GetString(EnvStreamAPISecret)),
			BaseURL:   v.GetString("STREAM_BASE_URL"),
			TokenTTL:  ttl,
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	return config, nil
}

// Configured reports whether the processor secret key is present
func (c StripeConfig) Configured() bool {
	return c.SecretKey != ""
}

// Diagnostics maps each expected variable name to "set" or "missing"
func (c StripeConfig) Diagnostics() map[string]string {
	return map[string]string{
		EnvStripeSecretKey: presence(c.SecretKey),
	}
}

// Configured reports whether both the API key and secret are present
func (c StreamConfig) Configured() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// Diagnostics maps each expected variable name to "set" or "missing"
func (c StreamConfig) Diagnostics() map[string]string {
	return map[string]string{
		EnvStreamAPIKey:    presence(c.APIKey),
		EnvStreamAPISecret: presence(c.APISecret),
	}
}

func presence(value string) string {
	if value == "" {
		return "missing"
	}
	return "set"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
