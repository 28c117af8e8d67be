package resilience

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quickPolicy() Policy {
	return Policy{
		Attempts:   3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
	}
}

func TestDoFirstTrySucceeds(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), quickPolicy(), func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), quickPolicy(), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, MarkTransient(errors.New("overloaded"))
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUpOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("invalid_request_error")
	_, err := Do(context.Background(), quickPolicy(), func(ctx context.Context) (int, error) {
		calls++
		return 0, permanent
	})
	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), quickPolicy(), func(ctx context.Context) (int, error) {
		calls++
		return 0, MarkTransient(errors.New("rate limit"))
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, Policy{Attempts: 5, BaseDelay: time.Hour}, func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, MarkTransient(errors.New("service unavailable"))
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoReportsRetries(t *testing.T) {
	var seen []int
	p := quickPolicy()
	p.OnRetry = func(attempt int, err error) { seen = append(seen, attempt) }

	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		return 0, MarkTransient(errors.New("bad gateway"))
	})
	require.Error(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestDoCustomRetryable(t *testing.T) {
	p := quickPolicy()
	p.Retryable = func(error) bool { return false }
	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, MarkTransient(errors.New("overloaded"))
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestPolicyDelayGrowsAndCaps(t *testing.T) {
	p := Policy{BaseDelay: time.Second, MaxDelay: 4 * time.Second, Multiplier: 2}.normalized()
	assert.Equal(t, time.Second, p.delay(1))
	assert.Equal(t, 2*time.Second, p.delay(2))
	assert.Equal(t, 4*time.Second, p.delay(3))
	assert.Equal(t, 4*time.Second, p.delay(8))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"marked", MarkTransient(errors.New("x")), true},
		{"rate limit text", errors.New("anthropic: rate_limit_error"), true},
		{"overloaded text", errors.New("Overloaded"), true},
		{"503 text", errors.New("503 Service Unavailable"), true},
		{"conn reset", syscall.ECONNRESET, true},
		{"permanent", errors.New("invalid_request_error: prompt too long"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
