package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsEventually(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return Retryable(errors.New("transient"))
		}
		return nil
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("still broken")
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return Retryable(cause)
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	assert.Equal(t, cause, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("plain error")
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	cause := errors.New("bad input")
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return Permanent(cause)
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond),
		WithRetryIf(func(error) bool { return true }))

	assert.Equal(t, cause, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_RetryIfOverridesDefault(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errors.New("plain error")
	}, WithMaxAttempts(2), WithInitialDelay(time.Millisecond),
		WithRetryIf(func(error) bool { return true }))

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDo_ContextCancelStopsWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	attempts := 0
	err := Do(ctx, func(ctx context.Context) error {
		attempts++
		cancel()
		return Retryable(errors.New("transient"))
	}, WithMaxAttempts(5), WithInitialDelay(time.Hour))

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoWithData(t *testing.T) {
	attempts := 0
	got, err := DoWithData(context.Background(), func(ctx context.Context) (int, error) {
		attempts++
		if attempts < 2 {
			return 0, Retryable(errors.New("transient"))
		}
		return 42, nil
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestOnRetryCallback(t *testing.T) {
	var seen []int
	_ = Do(context.Background(), func(ctx context.Context) error {
		return Retryable(errors.New("transient"))
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond),
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			seen = append(seen, attempt)
		}))

	assert.Equal(t, []int{1, 2}, seen)
}

func TestCalculateDelay_CappedAtMax(t *testing.T) {
	r := New(
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(300*time.Millisecond),
		WithMultiplier(10),
		WithJitter(0),
	)

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(2))
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(5))
}
