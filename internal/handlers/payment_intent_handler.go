package handlers

import (
	"context"
	"net/http"
	"strings"

	"stream-token-backend/internal/models"
	"stream-token-backend/internal/services"
	"stream-token-backend/pkg/lambda"
)

// PaymentIntentCORS are the headers sent on every payment-intent response
var PaymentIntentCORS = CORSHeaders(http.MethodPost)

// PaymentIntentHandler creates charge authorizations when a rider accepts a bid
type PaymentIntentHandler struct {
	service services.PaymentIntentService
}

// NewPaymentIntentHandler creates a new payment intent handler. A nil
// service answers every POST as misconfigured.
func NewPaymentIntentHandler(service services.PaymentIntentService) *PaymentIntentHandler {
	return &PaymentIntentHandler{
		service: service,
	}
}

// @Summary Create a payment intent
// @Description Create a charge authorization for an accepted bid and return its client secret
// @Tags payments
// @Accept json
// @Produce json
// @Param request body models.PaymentIntentRequest true "Amount in the smallest currency unit plus correlation ids"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payment-intent [post]
func (h *PaymentIntentHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch strings.ToUpper(req.Method) {
	case http.MethodOptions:
		return preflight(PaymentIntentCORS), nil
	case http.MethodPost:
	default:
		return errorResponse(req, PaymentIntentCORS, services.NewMethodNotAllowedError(req.Method))
	}

	if h.service == nil {
		return errorResponse(req, PaymentIntentCORS, services.NewMisconfiguredError(nil))
	}
	if err := h.service.CheckConfiguration(); err != nil {
		return errorResponse(req, PaymentIntentCORS, err)
	}

	body, err := models.DecodePaymentIntentRequest(req.Body)
	if err != nil {
		return errorResponse(req, PaymentIntentCORS, services.NewInvalidInputError("Invalid request body", err))
	}

	resp, err := h.service.CreatePaymentIntent(ctx, body)
	if err != nil {
		return errorResponse(req, PaymentIntentCORS, err)
	}

	return lambda.JSONResponse(http.StatusOK, PaymentIntentCORS, resp)
}
