package services

import (
	"fmt"

	"stream-token-backend/internal/config"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	PaymentIntentService PaymentIntentService
	TokenService         TokenService
}

// Collaborators holds the third-party clients; either may be nil when the
// matching credentials are not configured
type Collaborators struct {
	Processor PaymentProcessor
	Platform  MessagingPlatform
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(cfg *config.Config, collaborators Collaborators) (*ServiceContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &ServiceContainer{
		PaymentIntentService: NewPaymentIntentService(cfg.Stripe, collaborators.Processor),
		TokenService:         NewTokenService(cfg.Stream, collaborators.Platform),
	}, nil
}
