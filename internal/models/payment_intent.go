package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// ErrInvalidBody is returned when a request body is not a well-formed payment intent object
var ErrInvalidBody = errors.New("invalid request body")

// PaymentIntentRequest is the body accepted by the payment-intent endpoint.
// Amount is in the smallest currency unit (fils for AED).
type PaymentIntentRequest struct {
	Amount    *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency  string           `json:"currency,omitempty" validate:"max=16"`
	RequestID string           `json:"requestId,omitempty"`
	BiddingID string           `json:"biddingId,omitempty"`
	UserID    string           `json:"userId,omitempty"`
}

// PaymentIntentResponse carries the secret a client-side payment SDK needs
// to confirm the charge
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ChargeMetadata holds the correlation identifiers forwarded to the processor
type ChargeMetadata struct {
	RequestID string
	BiddingID string
	UserID    string
}

// ChargeAuthorizationParams is what gets sent to the payment processor
type ChargeAuthorizationParams struct {
	Amount   int64
	Currency string
	Metadata ChargeMetadata
}

// ChargeAuthorization is the processor-side record created for a charge
type ChargeAuthorization struct {
	ID           string
	ClientSecret string
}

// DecodePaymentIntentRequest parses a JSON body. An empty body decodes to an
// empty request so the amount check reports the problem; unknown fields and
// trailing data are rejected.
func DecodePaymentIntentRequest(body []byte) (*PaymentIntentRequest, error) {
	req := &PaymentIntentRequest{}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidBody)
	}

	return req, nil
}

// Validate checks the request shape
func (r *PaymentIntentRequest) Validate() error {
	return Validate(r)
}

// RoundedAmount rounds the amount half away from zero and requires the
// result to be a positive int64
func (r *PaymentIntentRequest) RoundedAmount() (int64, error) {
	if r.Amount == nil {
		return 0, &ValidationError{Field: "amount", Message: fieldMessages["amount"]}
	}

	rounded := r.Amount.Round(0)
	if !rounded.IsPositive() || rounded.GreaterThan(maxAmount) {
		return 0, &ValidationError{Field: "amount", Message: "Invalid amount", Value: r.Amount.String()}
	}

	return rounded.IntPart(), nil
}

// NormalizedCurrency lower-cases the requested currency, falling back to the
// given default when none was sent
func (r *PaymentIntentRequest) NormalizedCurrency(fallback string) string {
	currency := strings.TrimSpace(r.Currency)
	if currency == "" {
		currency = fallback
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return strings.ToLower(currency)
}

// ChargeMetadata returns the correlation identifiers; absent ones are empty strings
func (r *PaymentIntentRequest) ChargeMetadata() ChargeMetadata {
	return ChargeMetadata{
		RequestID: r.RequestID,
		BiddingID: r.BiddingID,
		UserID:    r.UserID,
	}
}

// Map returns every metadata key, including empty ones
func (m ChargeMetadata) Map() map[string]string {
	return map[string]string{
		MetadataRequestID: m.RequestID,
		MetadataBiddingID: m.BiddingID,
		MetadataUserID:    m.UserID,
	}
}
