package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"curalink-backend/internal/summary/domain"
	"curalink-backend/internal/summary/usecase"
	"curalink-backend/pkg/ai"

	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns the scripted errors in order, then text.
type scriptedGenerator struct {
	errs    []error
	text    string
	prompts []string
}

func (g *scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if len(g.prompts) <= len(g.errs) {
		return "", g.errs[len(g.prompts)-1]
	}
	return g.text, nil
}

type sleepRecorder struct {
	delays []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestRetryingSummarizer_FirstTry(t *testing.T) {
	gen := &scriptedGenerator{text: "summary"}
	rec := &sleepRecorder{}
	s := usecase.NewRetryingSummarizer(gen, usecase.WithSleep(rec.sleep))

	text, err := s.Summarize(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "summary", text)
	require.Len(t, gen.prompts, 1)
	require.Empty(t, rec.delays)
}

func TestRetryingSummarizer_BacksOffTwoThenFourSeconds(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{ai.ErrRateLimited, fmt.Errorf("googleapi: Error 429: %w", ai.ErrRateLimited)},
		text: "third time lucky",
	}
	rec := &sleepRecorder{}
	s := usecase.NewRetryingSummarizer(gen, usecase.WithSleep(rec.sleep))

	text, err := s.Summarize(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "third time lucky", text)
	require.Len(t, gen.prompts, 3)
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.delays)
}

func TestRetryingSummarizer_ExhaustsAttempts(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{ai.ErrRateLimited, ai.ErrRateLimited, ai.ErrRateLimited, ai.ErrRateLimited}}
	rec := &sleepRecorder{}
	s := usecase.NewRetryingSummarizer(gen, usecase.WithSleep(rec.sleep))

	_, err := s.Summarize(context.Background(), "prompt")
	require.ErrorIs(t, err, domain.ErrSummarizationFailed)
	require.ErrorIs(t, err, ai.ErrRateLimited)
	require.Len(t, gen.prompts, 3)
	require.Len(t, rec.delays, 2)

	var sumErr *domain.SummarizationError
	require.True(t, errors.As(err, &sumErr))
	require.Equal(t, 3, sumErr.Attempts)
}

func TestRetryingSummarizer_NonRateLimitIsTerminal(t *testing.T) {
	cause := errors.New("invalid argument")
	gen := &scriptedGenerator{errs: []error{cause}}
	rec := &sleepRecorder{}
	s := usecase.NewRetryingSummarizer(gen, usecase.WithSleep(rec.sleep), usecase.WithMaxAttempts(5))

	_, err := s.Summarize(context.Background(), "prompt")
	require.ErrorIs(t, err, domain.ErrSummarizationFailed)
	require.ErrorIs(t, err, cause)
	require.Len(t, gen.prompts, 1)
	require.Empty(t, rec.delays)
}

func TestRetryingSummarizer_CallTimeout(t *testing.T) {
	blocking := ai.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	s := usecase.NewRetryingSummarizer(blocking, usecase.WithCallTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := s.Summarize(context.Background(), "prompt")
	require.ErrorIs(t, err, domain.ErrSummarizationFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 2*time.Second)
}
