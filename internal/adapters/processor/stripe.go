package processor

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/models"
)

// ProcessorError carries the processor's own message, which is safe and
// useful to show to the caller
type ProcessorError struct {
	Message    string
	Type       string
	Code       string
	StatusCode int
	RequestID  string
	Err        error
}

func (e *ProcessorError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}

// StripeProcessor creates PaymentIntents through the Stripe API
type StripeProcessor struct {
	api *client.API
}

// NewStripeProcessor builds a Stripe client that never retries on its own
func NewStripeProcessor(cfg config.StripeConfig) *StripeProcessor {
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     logrus.WithField("component", "stripe"),
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackend(stripe.ConnectBackend),
		Uploads: stripe.GetBackend(stripe.UploadsBackend),
	}

	return &StripeProcessor{api: client.New(cfg.SecretKey, backends)}
}

// CreateChargeAuthorization creates a PaymentIntent with automatic payment
// methods enabled and the correlation identifiers attached as metadata
func (p *StripeProcessor) CreateChargeAuthorization(ctx context.Context, params *models.ChargeAuthorizationParams) (*models.ChargeAuthorization, error) {
	intentParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(params.Amount),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intentParams.Context = ctx
	for key, value := range params.Metadata.Map() {
		intentParams.AddMetadata(key, value)
	}

	intent, err := p.api.PaymentIntents.New(intentParams)
	if err != nil {
		return nil, normalizeError(err)
	}

	return &models.ChargeAuthorization{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func normalizeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProcessorError{
			Message:    stripeErr.Msg,
			Type:       string(stripeErr.Type),
			Code:       string(stripeErr.Code),
			StatusCode: stripeErr.HTTPStatusCode,
			RequestID:  stripeErr.RequestID,
			Err:        err,
		}
	}
	return &ProcessorError{Err: err}
}
