package usecase

import (
	"context"
	"time"

	"curalink-backend/internal/summary/domain"
	"curalink-backend/pkg/ai"
	"curalink-backend/pkg/retry"

	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultCallTimeout = 10 * time.Second
)

// Summarizer produces a summary for a fully built prompt.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// RetryingSummarizer calls a text generator and retries only rate-limited
// failures, waiting 2^attempt * baseDelay between attempts.
type RetryingSummarizer struct {
	generator   ai.TextGenerator
	maxAttempts int
	baseDelay   time.Duration
	callTimeout time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *zap.Logger
}

type SummarizerOption func(*RetryingSummarizer)

// WithMaxAttempts sets the total number of generation attempts.
func WithMaxAttempts(n int) SummarizerOption {
	return func(s *RetryingSummarizer) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithCallTimeout bounds each generation call.
func WithCallTimeout(d time.Duration) SummarizerOption {
	return func(s *RetryingSummarizer) {
		if d > 0 {
			s.callTimeout = d
		}
	}
}

func WithBaseDelay(d time.Duration) SummarizerOption {
	return func(s *RetryingSummarizer) { s.baseDelay = d }
}

func WithSleep(sleep func(ctx context.Context, d time.Duration) error) SummarizerOption {
	return func(s *RetryingSummarizer) { s.sleep = sleep }
}

func WithSummarizerLogger(l *zap.Logger) SummarizerOption {
	return func(s *RetryingSummarizer) {
		if l != nil {
			s.logger = l.Named("summarizer")
		}
	}
}

func NewRetryingSummarizer(generator ai.TextGenerator, opts ...SummarizerOption) *RetryingSummarizer {
	s := &RetryingSummarizer{
		generator:   generator,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		callTimeout: DefaultCallTimeout,
		sleep:       retry.Sleep,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the generated text or a *domain.SummarizationError.
func (s *RetryingSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	var (
		text     string
		attempts int
	)

	err := retry.Do(ctx, retry.Config{
		MaxAttempts: s.maxAttempts,
		BaseDelay:   s.baseDelay,
		Retryable:   ai.IsRateLimited,
		Sleep:       s.sleep,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			s.logger.Info("rate limited, backing off",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", s.maxAttempts),
				zap.Duration("wait", delay))
		},
	}, func(ctx context.Context, attempt int) error {
		attempts = attempt
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()

		out, err := s.generator.Generate(callCtx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return "", &domain.SummarizationError{Attempts: attempts, Err: err}
	}
	return text, nil
}
