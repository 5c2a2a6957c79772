package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP status
// codes with errors.Is; anything unmatched is a persistence failure (500).
var (
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrServiceNotFound   = errors.New("service not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrFixedFieldRemoved = errors.New("fixed field missing from schema")
	ErrInvalidField      = errors.New("invalid field definition")
)

// ValidationError carries per-field messages for a payload that failed the
// schema's validation rules.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
