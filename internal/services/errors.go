package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for status-code mapping
type Kind int

const (
	// KindInternal covers anything not classified below
	KindInternal Kind = iota
	// KindInvalidInput is a malformed or missing request parameter
	KindInvalidInput
	// KindMethodNotAllowed is an HTTP method the endpoint does not serve
	KindMethodNotAllowed
	// KindServerMisconfigured is missing server-side credentials
	KindServerMisconfigured
	// KindUpstreamFailure is an error returned by a third-party SDK
	KindUpstreamFailure
)

// String returns the code reported in error responses
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindServerMisconfigured:
		return "server_misconfigured"
	case KindUpstreamFailure:
		return "upstream_failure"
	default:
		return "internal"
	}
}

// StatusCode maps the kind to its HTTP status
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to callers; Err
// keeps the full detail for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Config lists expected configuration keys as "set" or "missing"
	Config map[string]string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an InvalidInput error
func NewInvalidInputError(message string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Err: err}
}

// NewMethodNotAllowedError creates a MethodNotAllowed error
func NewMethodNotAllowedError(method string) *Error {
	return &Error{
		Kind:    KindMethodNotAllowed,
		Message: "Method not allowed",
		Err:     fmt.Errorf("method %s not allowed", method),
	}
}

// NewMisconfiguredError creates a ServerMisconfigured error carrying key-name diagnostics only
func NewMisconfiguredError(diagnostics map[string]string) *Error {
	return &Error{Kind: KindServerMisconfigured, Message: "Server misconfigured", Config: diagnostics}
}

// NewUpstreamError creates an UpstreamFailure error
func NewUpstreamError(message string, err error) *Error {
	return &Error{Kind: KindUpstreamFailure, Message: message, Err: err}
}

// AsError extracts a classified error, wrapping anything else as KindInternal
func AsError(err error) *Error {
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the kind of err, or KindInternal when unclassified
func KindOf(err error) Kind {
	return AsError(err).Kind
}
