package lambda

import (
	"context"
	"encoding/json"
	"net/http"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
	RequestID   string            `json:"request_id"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// NewResponse creates a response with the given status and a copy of headers
func NewResponse(statusCode int, headers map[string]string) *Response {
	resp := &Response{
		StatusCode: statusCode,
		Headers:    make(map[string]string, len(headers)+1),
	}
	for key, value := range headers {
		resp.Headers[key] = value
	}
	return resp
}

// JSONResponse creates a response with a JSON-encoded body
func JSONResponse(statusCode int, headers map[string]string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp := NewResponse(statusCode, headers)
	resp.Headers["Content-Type"] = "application/json"
	resp.Body = body
	return resp, nil
}

// InternalErrorResponse is returned when a handler fails outside its own error mapping
func InternalErrorResponse(headers map[string]string) *Response {
	resp := NewResponse(http.StatusInternalServerError, headers)
	resp.Headers["Content-Type"] = "application/json"
	resp.Body = []byte(`{"error":"Internal server error","code":"internal"}`)
	return resp
}
