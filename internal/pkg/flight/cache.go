package flight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// releaseLockScript deletes the lock only while it still holds our token.
const releaseLockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// SweepLockKey guards one sweep per origin.
func SweepLockKey(origin string) string {
	return fmt.Sprintf("fare:lock:sweep:%s", origin)
}

// FareCache keeps fetched listings per tuple and holds the sweep lock. Cache
// keys are not scoped to a sweep, so entries outlive the sweep that wrote them
// until they expire.
type FareCache struct {
	redis RedisClient

	mu     sync.Mutex
	tokens map[string]string
}

func NewFareCache(redis RedisClient) *FareCache {
	return &FareCache{
		redis:  redis,
		tokens: make(map[string]string),
	}
}

func (c *FareCache) GetLockKey(origin string) string {
	return SweepLockKey(origin)
}

func (c *FareCache) GetCacheKey(source, mode string, req dto.SearchCriteria) string {
	return fmt.Sprintf("fare:cache:%s:%s:%s:%s:%s:%s",
		source, mode, req.Origin, req.Destination,
		utils.FormatISODate(req.DepartDate), utils.FormatISODate(req.ReturnDate))
}

// AcquireLock takes key with a fresh token so only this holder can release it.
func (c *FareCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	token := uuid.NewString()

	ok, err := c.redis.SetNX(ctx, key, token, timeout).Result()
	if err != nil || !ok {
		return false, err
	}

	c.mu.Lock()
	c.tokens[key] = token
	c.mu.Unlock()

	return true, nil
}

// ReleaseLock deletes key if it still carries our token. A lock that expired
// and was taken by another holder is left alone and reported.
func (c *FareCache) ReleaseLock(ctx context.Context, key string) error {
	c.mu.Lock()
	token, ok := c.tokens[key]
	delete(c.tokens, key)
	c.mu.Unlock()

	if !ok {
		return nil
	}

	deleted, err := c.redis.Eval(ctx, releaseLockScript, []string{key}, token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}

	if deleted == 0 {
		return fmt.Errorf("lock %s expired before release", key)
	}

	return nil
}

func (c *FareCache) SetFares(ctx context.Context, key string, records []dto.FlightRecord, expiration time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal fares: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set fares: %w", err)
	}

	return nil
}

// GetFares reports found=false on a cache miss.
func (c *FareCache) GetFares(ctx context.Context, key string) ([]dto.FlightRecord, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	var records []dto.FlightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal fares: %w", err)
	}

	return records, true, nil
}
