package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"stream-token-backend/internal/services"
	"stream-token-backend/pkg/lambda"
)

// ErrorResponse represents a standard error response. Error is the
// caller-facing message.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	RequestID string            `json:"request_id,omitempty"`
	Config    map[string]string `json:"config,omitempty"`
}

// CORSHeaders returns the permissive cross-origin headers for an endpoint
// serving the given methods. OPTIONS is always allowed.
func CORSHeaders(methods ...string) map[string]string {
	allowed := make([]string, 0, len(methods)+1)
	allowed = append(allowed, methods...)
	allowed = append(allowed, http.MethodOptions)

	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": strings.Join(allowed, ", "),
		"Access-Control-Allow-Headers": "Content-Type",
	}
}

// preflight answers an OPTIONS request
func preflight(headers map[string]string) *lambda.Response {
	return lambda.NewResponse(http.StatusOK, headers)
}

// errorResponse logs err with full detail and shapes the caller-facing body
func errorResponse(req *lambda.Request, headers map[string]string, err error) (*lambda.Response, error) {
	classified := services.AsError(err)
	status := classified.Kind.StatusCode()

	entry := logrus.WithFields(logrus.Fields{
		"request_id":  req.RequestID,
		"method":      req.Method,
		"path":        req.Path,
		"status_code": status,
		"code":        classified.Kind.String(),
	})
	if classified.Err != nil {
		entry = entry.WithError(classified.Err)
	}
	if status >= http.StatusInternalServerError {
		entry.Error(classified.Message)
	} else {
		entry.Warn(classified.Message)
	}

	return lambda.JSONResponse(status, headers, ErrorResponse{
		Error:     classified.Message,
		Code:      classified.Kind.String(),
		RequestID: req.RequestID,
		Config:    classified.Config,
	})
}
