package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	probePrompt       = "test"
	defaultProbeLimit = 15 * time.Second
)

// Candidate is one provider/model configuration tried at startup.
type Candidate struct {
	Name  string
	Build func(ctx context.Context) (TextGenerator, error)
}

// Probe tries candidates in order with a short test prompt and returns the
// first generator that answers. Failure of every candidate is returned as an
// error wrapping ErrNoProvider and the individual causes.
func Probe(ctx context.Context, candidates []Candidate, timeout time.Duration, logger *zap.Logger) (TextGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultProbeLimit
	}

	var errs []error
	for _, c := range candidates {
		logger.Info("probing AI model", zap.String("candidate", c.Name))

		gen, err := c.Build(ctx)
		if err != nil {
			logger.Warn("AI model not available", zap.String("candidate", c.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		_, err = gen.Generate(probeCtx, probePrompt)
		cancel()
		if err != nil {
			logger.Warn("AI model not available", zap.String("candidate", c.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
			continue
		}

		logger.Info("using AI model", zap.String("model", gen.Name()))
		return gen, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no candidates configured", ErrNoProvider)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoProvider, errors.Join(errs...))
}
