package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// Config holds retry configuration
type Config struct {
	// MaxAttempts counts the first call, so 3 means one call plus two retries.
	MaxAttempts int
	BaseDelay   time.Duration
	// Retryable decides whether a failed attempt is worth another try.
	// A nil Retryable retries every error.
	Retryable func(error) bool
	// Sleep waits between attempts. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each wait, mostly for logging.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Backoff returns the wait after the given failed attempt (1-based):
// BaseDelay * 2^attempt, so 2s, 4s, 8s for a one second base.
func Backoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<attempt)
}

// Do runs operation until it succeeds, returns a non-retryable error, or
// MaxAttempts is reached. The last operation error is returned unwrapped so
// callers can classify it. A cancelled wait returns the context error.
func Do(ctx context.Context, cfg Config, operation func(ctx context.Context, attempt int) error) error {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = operation(ctx, attempt)
		if err == nil {
			return nil
		}
		if cfg.Retryable != nil && !cfg.Retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		delay := Backoff(cfg.BaseDelay, attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
	}
	return err
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// StatusError reports a non-2xx HTTP response from an upstream API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status " + http.StatusText(e.StatusCode) + ": " + e.Body
}

// HTTPStatusRetryable checks if an HTTP status code is retryable
func HTTPStatusRetryable(statusCode int) bool {
	// Retry on server errors (5xx) and rate limiting (429)
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}

// IsTransient reports whether err is a retryable upstream failure: a
// retryable StatusError or a network error. Context errors are final.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return HTTPStatusRetryable(statusErr.StatusCode)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
