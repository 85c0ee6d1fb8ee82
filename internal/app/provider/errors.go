package provider

import (
	"errors"
	"fmt"
)

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable"`
	Cause      error  `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// ProviderSchemaError reports a provider response without the fields the
// relay promises its clients.
type ProviderSchemaError struct {
	Reason string
	Cause  error
}

func (e *ProviderSchemaError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider schema error: %s: %v", e.Reason, e.Cause)
	}
	return "provider schema error: " + e.Reason
}

func (e *ProviderSchemaError) Unwrap() error {
	return e.Cause
}

// ErrorCode classifies err for metrics and logs.
func ErrorCode(err error) string {
	var schemaErr *ProviderSchemaError
	if errors.As(err, &schemaErr) {
		return "schema"
	}
	var tErr *TranscriptionError
	if errors.As(err, &tErr) && tErr.Code != "" {
		return tErr.Code
	}
	return "unknown"
}
