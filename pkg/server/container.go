package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/adapters/chat"
	"stream-token-backend/internal/adapters/processor"
	"stream-token-backend/internal/config"
	"stream-token-backend/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config               *config.Config
	PaymentIntentService services.PaymentIntentService
	TokenService         services.TokenService

	services *services.ServiceContainer
}

// NewContainer wires configuration into adapters and services. Missing
// credentials are not an error here: the affected service reports them per
// request so callers get a diagnosable response.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var collaborators services.Collaborators

	if cfg.Stripe.Configured() {
		collaborators.Processor = processor.NewStripeProcessor(cfg.Stripe)
	} else {
		logrus.WithField("config", cfg.Stripe.Diagnostics()).Warn("Payment processor not configured")
	}

	if cfg.Stream.Configured() {
		platform, err := chat.NewStreamPlatform(cfg.Stream)
		if err != nil {
			return nil, fmt.Errorf("failed to create messaging platform client: %w", err)
		}
		collaborators.Platform = platform
	} else {
		logrus.WithField("config", cfg.Stream.Diagnostics()).Warn("Messaging platform not configured")
	}

	serviceContainer, err := services.NewServiceContainer(cfg, collaborators)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:               cfg,
		PaymentIntentService: serviceContainer.PaymentIntentService,
		TokenService:         serviceContainer.TokenService,
		services:             serviceContainer,
	}, nil
}

// Close cleans up all resources. The SDK clients hold no connections that
// need explicit release.
func (c *Container) Close() error {
	c.services = nil
	return nil
}
