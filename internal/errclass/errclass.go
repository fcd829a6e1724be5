// Package errclass classifies operation failures into a small taxonomy and
// drives deliberate (never automatic) retry of the last failed action.
package errclass

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/api"
)

// Category buckets a failure for display and retry policy
type Category string

const (
	CategoryNetwork    Category = "network"
	CategoryValidation Category = "validation"
	CategoryServer     Category = "server"
	CategoryUnknown    Category = "unknown"
)

// ErrorState describes the most recent failure for UI consumers
type ErrorState struct {
	Message    string    `json:"message"`
	Category   Category  `json:"category"`
	StatusCode int       `json:"status_code,omitempty"`
	Field      string    `json:"field,omitempty"`
	Retryable  bool      `json:"retryable"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Classify derives an ErrorState from a raw failure. A nil error yields nil.
//
// Backend errors with a status code are categorized by code: 400/422 are
// validation (not retryable), 404 is server (not retryable), >=500 is
// server (retryable). Connectivity-shaped errors are network (retryable).
// Anything else falls back to message heuristics, defaulting to
// retryable-unknown.
func Classify(err error) *ErrorState {
	if err == nil {
		return nil
	}

	state := &ErrorState{
		Message:    err.Error(),
		OccurredAt: time.Now().UTC(),
	}

	if apiErr := api.AsAPIError(err); apiErr != nil {
		state.Message = apiErr.Message
		state.StatusCode = apiErr.StatusCode
		state.Field = apiErr.Field
		switch {
		case apiErr.StatusCode == 400 || apiErr.StatusCode == 422:
			state.Category = CategoryValidation
			state.Retryable = false
		case apiErr.StatusCode == 404:
			state.Category = CategoryServer
			state.Retryable = false
		case apiErr.StatusCode >= 500:
			state.Category = CategoryServer
			state.Retryable = true
		default:
			state.Category = CategoryUnknown
			state.Retryable = true
		}
		return state
	}

	if isConnectivityError(err) {
		state.Category = CategoryNetwork
		state.Retryable = true
		return state
	}

	state.Category = CategoryUnknown
	state.Retryable = true
	return state
}

func isConnectivityError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"network", "connection", "timeout", "timed out", "no such host", "refused"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
