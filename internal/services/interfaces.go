package services

import (
	"context"

	"stream-token-backend/internal/models"
)

// PaymentIntentService creates charge authorizations for accepted bids
type PaymentIntentService interface {
	// CheckConfiguration fails with KindServerMisconfigured when credentials are absent
	CheckConfiguration() error
	CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

// TokenService registers chat identities and issues user tokens
type TokenService interface {
	CheckConfiguration() error
	IssueToken(ctx context.Context, req *models.TokenRequest) (*models.TokenResponse, error)
}

// PaymentProcessor is the third-party payment processor
type PaymentProcessor interface {
	CreateChargeAuthorization(ctx context.Context, params *models.ChargeAuthorizationParams) (*models.ChargeAuthorization, error)
}

// MessagingPlatform is the third-party chat/video platform
type MessagingPlatform interface {
	// UpsertIdentities creates or updates users; it is idempotent
	UpsertIdentities(ctx context.Context, userIDs []string) error
	IssueToken(ctx context.Context, userID string) (string, error)
}
