package models

// DefaultCurrency is used when neither the request nor the configuration names one
const DefaultCurrency = "aed"

// Metadata keys attached to every charge authorization
const (
	MetadataRequestID = "requestId"
	MetadataBiddingID = "biddingId"
	MetadataUserID    = "userId"
)

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}
