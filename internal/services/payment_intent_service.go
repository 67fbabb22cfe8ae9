package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/config"
	"stream-token-backend/internal/models"
)

const paymentIntentFailedMessage = "Failed to create payment intent"

// paymentIntentService implements PaymentIntentService
type paymentIntentService struct {
	config    config.StripeConfig
	processor PaymentProcessor
}

// NewPaymentIntentService creates a new payment intent service. processor
// may be nil when the processor is not configured.
func NewPaymentIntentService(cfg config.StripeConfig, processor PaymentProcessor) PaymentIntentService {
	return &paymentIntentService{
		config:    cfg,
		processor: processor,
	}
}

// CheckConfiguration reports missing processor credentials
func (s *paymentIntentService) CheckConfiguration() error {
	if !s.config.Configured() || s.processor == nil {
		logrus.WithField("config", s.config.Diagnostics()).Error("Missing payment processor configuration")
		return NewMisconfiguredError(s.config.Diagnostics())
	}
	return nil
}

// CreatePaymentIntent validates the request and asks the processor for a
// charge authorization. Processor messages are passed through to the
// caller because they carry actionable detail such as disabled currencies.
func (s *paymentIntentService) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	if err := s.CheckConfiguration(); err != nil {
		return nil, err
	}

	if req == nil {
		req = &models.PaymentIntentRequest{}
	}

	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	amount, err := req.RoundedAmount()
	if err != nil {
		return nil, invalidInput(err)
	}

	params := &models.ChargeAuthorizationParams{
		Amount:   amount,
		Currency: req.NormalizedCurrency(s.config.DefaultCurrency),
		Metadata: req.ChargeMetadata(),
	}

	authorization, err := s.processor.CreateChargeAuthorization(ctx, params)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"amount":     params.Amount,
			"currency":   params.Currency,
			"request_id": params.Metadata.RequestID,
			"bidding_id": params.Metadata.BiddingID,
			"error":      err.Error(),
		}).Error("PaymentIntent error")

		message := err.Error()
		if message == "" {
			message = paymentIntentFailedMessage
		}
		return nil, NewUpstreamError(message, err)
	}

	logrus.WithFields(logrus.Fields{
		"payment_intent_id": authorization.ID,
		"amount":            params.Amount,
		"currency":          params.Currency,
		"bidding_id":        params.Metadata.BiddingID,
	}).Info("Payment intent created")

	return &models.PaymentIntentResponse{ClientSecret: authorization.ClientSecret}, nil
}

func invalidInput(err error) *Error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return NewInvalidInputError(validationErr.Message, err)
	}
	return NewInvalidInputError(err.Error(), err)
}
