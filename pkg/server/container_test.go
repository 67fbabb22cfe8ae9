package server

import (
	"testing"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/services"
)

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		Port:        "8080",
		Stripe: config.StripeConfig{
			SecretKey:       "sk_test_123",
			DefaultCurrency: "aed",
		},
		Stream: config.StreamConfig{
			APIKey:    "key",
			APISecret: "secret",
		},
	}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.PaymentIntentService == nil {
		t.Error("PaymentIntentService is nil")
	}
	if container.TokenService == nil {
		t.Error("TokenService is nil")
	}

	if err := container.PaymentIntentService.CheckConfiguration(); err != nil {
		t.Errorf("PaymentIntentService should be configured: %v", err)
	}
	if err := container.TokenService.CheckConfiguration(); err != nil {
		t.Errorf("TokenService should be configured: %v", err)
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainerWithoutCredentials verifies missing credentials surface per request
func TestNewContainerWithoutCredentials(t *testing.T) {
	container, err := NewContainer(&config.Config{Environment: "test"})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	if services.KindOf(container.PaymentIntentService.CheckConfiguration()) != services.KindServerMisconfigured {
		t.Error("Expected payment intent service to report misconfiguration")
	}
	if services.KindOf(container.TokenService.CheckConfiguration()) != services.KindServerMisconfigured {
		t.Error("Expected token service to report misconfiguration")
	}
}

// TestNewContainerNilConfig verifies nil configuration is rejected
func TestNewContainerNilConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
