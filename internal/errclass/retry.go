package errclass

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/taskdeck/taskdeck/internal/logger"
	"go.uber.org/zap"
)

// RetryAction is the operation re-invoked by RetryLastAction
type RetryAction func(ctx context.Context) error

// RetryController holds the shared ErrorState and a single retry entry
// point bound to the last failed action. States are implicit:
// clear, error-present, retrying.
type RetryController struct {
	mu       sync.Mutex
	current  *ErrorState
	action   RetryAction
	retrying bool
	log      *zap.Logger
}

// NewRetryController creates a controller in the clear state
func NewRetryController(log *zap.Logger) *RetryController {
	return &RetryController{log: log}
}

// SetError classifies err and transitions to error-present, binding action
// as the retry target. A nil err transitions to clear instead.
func (c *RetryController) SetError(err error, action RetryAction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		c.current = nil
		c.action = nil
		return
	}

	c.current = Classify(err)
	c.action = action
	c.log.Warn("operation_failed",
		zap.String("category", string(c.current.Category)),
		zap.Int("status_code", c.current.StatusCode),
		zap.Bool("retryable", c.current.Retryable),
		zap.String("message", logger.SanitizeError(c.current.Message)),
	)
}

// Current returns the present ErrorState, or nil when clear
func (c *RetryController) Current() *ErrorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Clear transitions to the clear state (explicit dismissal or a
// subsequent successful operation).
func (c *RetryController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.action = nil
}

// Retrying reports whether a retry is in flight
func (c *RetryController) Retrying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retrying
}

// RetryLastAction re-invokes the bound action. It is a no-op when there is
// no error, the error is not retryable, or a retry is already in flight.
// The current error is cleared optimistically; on failure the new error is
// reclassified and becomes current.
func (c *RetryController) RetryLastAction(ctx context.Context) error {
	c.mu.Lock()
	if c.current == nil || !c.current.Retryable || c.retrying || c.action == nil {
		c.mu.Unlock()
		return nil
	}
	action := c.action
	c.retrying = true
	c.current = nil
	c.mu.Unlock()

	err := action(ctx)

	c.mu.Lock()
	c.retrying = false
	if err != nil {
		c.current = Classify(err)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("retry_failed", zap.Error(err))
	}
	return err
}

// Policy bounds the layered auto-retry behavior
type Policy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
}

// AutoRetry is an optional policy layered on top of the controller: it
// re-attempts the last failed action with exponential backoff, but only
// for network-category errors. The controller itself never retries
// automatically.
func AutoRetry(ctx context.Context, c *RetryController, policy Policy) error {
	state := c.Current()
	if state == nil || !state.Retryable || state.Category != CategoryNetwork {
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		bo.InitialInterval = policy.InitialInterval
	}

	attempt := 0
	operation := func() error {
		attempt++
		c.log.Info("auto_retry_attempt", zap.Int("attempt", attempt))
		if err := c.RetryLastAction(ctx); err != nil {
			if current := c.Current(); current != nil && !current.Retryable {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(policy.MaxAttempts)), ctx))
}
