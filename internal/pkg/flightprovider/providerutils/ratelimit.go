package providerutils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
)

// Limiter is the part of *redis_rate.Limiter the sources use.
type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimitKey is the shared bucket for one source.
func RateLimitKey(source string) string {
	return fmt.Sprintf("limit:navigation:%s", source)
}

// WaitForSlot blocks until the limiter admits one navigation. A nil limiter
// or a non-positive rate admits immediately.
func WaitForSlot(ctx context.Context, limiter Limiter, key string, perMinute int) error {
	if limiter == nil || perMinute <= 0 {
		return nil
	}

	for {
		res, err := limiter.Allow(ctx, key, redis_rate.PerMinute(perMinute))
		if err != nil {
			return ErrTransport.Withf("rate limit: %w", err)
		}

		if res.Allowed > 0 {
			return nil
		}

		select {
		case <-time.After(res.RetryAfter):
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return fmt.Errorf("waiting for rate limit: %w", ctx.Err())
			}

			return ErrTransport.Withf("waiting for rate limit: %w", ctx.Err())
		}
	}
}
