package api

import (
	"errors"
	"fmt"
)

// APIError represents a structured error response from the backend
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("backend error (status %d, field %s): %s", e.StatusCode, e.Field, e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// AsAPIError extracts an *APIError from an error chain, or nil
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
