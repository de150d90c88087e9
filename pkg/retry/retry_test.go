package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedSleep struct {
	delays []time.Duration
}

func (r *recordedSleep) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	rec := &recordedSleep{}
	calls := 0
	err := Do(context.Background(), Config{MaxAttempts: 3, BaseDelay: time.Second, Sleep: rec.sleep},
		func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return errors.New("busy")
			}
			return nil
		})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, rec.delays)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("bad request")
	rec := &recordedSleep{}
	calls := 0
	err := Do(context.Background(), Config{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleep:       rec.sleep,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
	}, func(ctx context.Context, attempt int) error {
		calls++
		return fatal
	})

	require.ErrorIs(t, err, fatal)
	require.Equal(t, 1, calls)
	require.Empty(t, rec.delays)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	rec := &recordedSleep{}
	var retried []int
	err := Do(context.Background(), Config{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleep:       rec.sleep,
		OnRetry:     func(attempt int, _ time.Duration, _ error) { retried = append(retried, attempt) },
	}, func(ctx context.Context, attempt int) error {
		return errors.New("still busy")
	})

	require.EqualError(t, err, "still busy")
	require.Equal(t, []int{1, 2}, retried)
	require.Len(t, rec.delays, 2)
}

func TestDo_CancelledWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Config{MaxAttempts: 3, BaseDelay: time.Hour}, func(ctx context.Context, attempt int) error {
		return errors.New("busy")
	})

	require.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	require.True(t, IsTransient(&StatusError{StatusCode: http.StatusBadGateway}))
	require.True(t, IsTransient(&StatusError{StatusCode: http.StatusTooManyRequests}))
	require.False(t, IsTransient(&StatusError{StatusCode: http.StatusNotFound}))
	require.False(t, IsTransient(context.DeadlineExceeded))
	require.False(t, IsTransient(errors.New("decode failed")))
}
