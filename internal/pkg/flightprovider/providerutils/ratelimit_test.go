//go:build unit

package providerutils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/exception"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	results []*redis_rate.Result
	err     error
	calls   int
}

func (s *stubLimiter) Allow(_ context.Context, _ string, _ redis_rate.Limit) (*redis_rate.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	res := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}

	return res, nil
}

func TestWaitForSlot(t *testing.T) {
	t.Run("nil_limiter", func(t *testing.T) {
		assert.NoError(t, WaitForSlot(context.Background(), nil, "k", 10))
	})

	t.Run("disabled_rate", func(t *testing.T) {
		limiter := &stubLimiter{}
		assert.NoError(t, WaitForSlot(context.Background(), limiter, "k", 0))
		assert.Zero(t, limiter.calls)
	})

	t.Run("waits_until_allowed", func(t *testing.T) {
		limiter := &stubLimiter{results: []*redis_rate.Result{
			{Allowed: 0, RetryAfter: time.Millisecond},
			{Allowed: 1},
		}}

		assert.NoError(t, WaitForSlot(context.Background(), limiter, "k", 10))
		assert.Equal(t, 2, limiter.calls)
	})

	t.Run("limiter_error", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis down")}

		err := WaitForSlot(context.Background(), limiter, "k", 10)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("context_canceled_while_waiting", func(t *testing.T) {
		limiter := &stubLimiter{results: []*redis_rate.Result{{Allowed: 0, RetryAfter: time.Hour}}}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WaitForSlot(ctx, limiter, "k", 10)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("deadline_while_waiting", func(t *testing.T) {
		limiter := &stubLimiter{results: []*redis_rate.Result{{Allowed: 0, RetryAfter: time.Hour}}}

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		err := WaitForSlot(ctx, limiter, "k", 10)
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, exception.KindTransport, exception.KindOf(err))
	})
}
