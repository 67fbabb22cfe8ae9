package handlers

import (
	"context"
	"net/http"
	"strings"

	"stream-token-backend/internal/models"
	"stream-token-backend/internal/services"
	"stream-token-backend/pkg/lambda"
)

// StreamTokenCORS are the headers sent on every stream-token response
var StreamTokenCORS = CORSHeaders(http.MethodGet)

// StreamTokenHandler issues chat/video tokens
type StreamTokenHandler struct {
	service services.TokenService
}

// NewStreamTokenHandler creates a new stream token handler
func NewStreamTokenHandler(service services.TokenService) *StreamTokenHandler {
	return &StreamTokenHandler{
		service: service,
	}
}

// @Summary Issue a chat token
// @Description Register userId and optional members with the messaging platform, then return a token for userId
// @Tags chat
// @Produce json
// @Param userId query string true "User to issue the token for"
// @Param members query string false "Comma-separated user ids to register alongside userId"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 405 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stream-token [get]
func (h *StreamTokenHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch strings.ToUpper(req.Method) {
	case http.MethodOptions:
		return preflight(StreamTokenCORS), nil
	case http.MethodGet:
	default:
		return errorResponse(req, StreamTokenCORS, services.NewMethodNotAllowedError(req.Method))
	}

	tokenReq := models.TokenRequestFromQuery(req.QueryParams)
	if err := tokenReq.Validate(); err != nil {
		return errorResponse(req, StreamTokenCORS, services.NewInvalidInputError("userId required", err))
	}

	if h.service == nil {
		return errorResponse(req, StreamTokenCORS, services.NewMisconfiguredError(nil))
	}

	resp, err := h.service.IssueToken(ctx, tokenReq)
	if err != nil {
		return errorResponse(req, StreamTokenCORS, err)
	}

	return lambda.JSONResponse(http.StatusOK, StreamTokenCORS, resp)
}
