package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func fail(context.Context) error { return errBoom }
func ok(context.Context) error   { return nil }

func TestOpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	cb := New("test", WithFailureThreshold(3))

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errBoom)
	}
	assert.True(t, cb.IsOpen())

	// open circuit rejects without calling the function
	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	cb := New("test", WithFailureThreshold(3))

	require.Error(t, cb.Execute(ctx, fail))
	require.Error(t, cb.Execute(ctx, fail))
	require.NoError(t, cb.Execute(ctx, ok))
	require.Error(t, cb.Execute(ctx, fail))
	require.Error(t, cb.Execute(ctx, fail))

	assert.True(t, cb.IsClosed())
}

func TestHalfOpenRecovery(t *testing.T) {
	ctx := context.Background()
	cb := New("test",
		WithFailureThreshold(1),
		WithSuccessThreshold(1),
		WithTimeout(time.Millisecond),
	)

	require.Error(t, cb.Execute(ctx, fail))
	require.True(t, cb.IsOpen())

	time.Sleep(5 * time.Millisecond)

	// the probe request closes the circuit again
	require.NoError(t, cb.Execute(ctx, ok))
	assert.True(t, cb.IsClosed())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	cb := New("test",
		WithFailureThreshold(1),
		WithTimeout(time.Millisecond),
	)

	require.Error(t, cb.Execute(ctx, fail))
	time.Sleep(5 * time.Millisecond)

	require.Error(t, cb.Execute(ctx, fail))
	assert.True(t, cb.IsOpen())
}

func TestExecuteWithFallback(t *testing.T) {
	ctx := context.Background()
	cb := New("test", WithFailureThreshold(1))

	require.Error(t, cb.Execute(ctx, fail))
	require.True(t, cb.IsOpen())

	err := cb.ExecuteWithFallback(ctx, fail, func(err error) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestIsFailureFilter(t *testing.T) {
	ctx := context.Background()
	benign := errors.New("benign")
	cb := New("test",
		WithFailureThreshold(1),
		WithIsFailure(func(err error) bool { return !errors.Is(err, benign) }),
	)

	require.Error(t, cb.Execute(ctx, func(context.Context) error { return benign }))
	assert.True(t, cb.IsClosed())

	require.Error(t, cb.Execute(ctx, fail))
	assert.True(t, cb.IsOpen())
}

func TestOnStateChange(t *testing.T) {
	ctx := context.Background()
	var transitions []State
	cb := New("test",
		WithFailureThreshold(1),
		WithOnStateChange(func(name string, from, to State) {
			transitions = append(transitions, to)
		}),
	)

	require.Error(t, cb.Execute(ctx, fail))
	assert.Equal(t, []State{StateOpen}, transitions)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	cb := New("test", WithFailureThreshold(1))

	require.Error(t, cb.Execute(ctx, fail))
	require.True(t, cb.IsOpen())

	cb.Reset()
	assert.True(t, cb.IsClosed())
	assert.Zero(t, cb.Counts().Requests)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
