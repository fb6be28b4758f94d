package flight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/app/dto"
	"github.com/ijalalfrz/flight-fare-sweeper/internal/pkg/flightprovider"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cacheCriteria = dto.SearchCriteria{
	Origin:      "Atlanta",
	Destination: "Cancun",
	DepartDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	ReturnDate:  time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC),
}

func TestFareCache_Keys(t *testing.T) {
	c := &FareCache{}

	assert.Equal(t, "fare:lock:sweep:Atlanta", c.GetLockKey("Atlanta"))
	assert.Equal(t, "fare:cache:expedia:nonstop:Atlanta:Cancun:2025-05-01:2025-05-08",
		c.GetCacheKey("expedia", flightprovider.ModeNonstop, cacheCriteria))
}

func TestFareCache_AcquireLock_Closure(t *testing.T) {
	acquireLockRequest := func(key string, timeout time.Duration, mockSetup func(m *MockRedisClient), want bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewFareCache(m)

			got, err := c.AcquireLock(context.Background(), key, timeout)
			if err != nil {
				t.Fatalf("AcquireLock returned error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}

	t.Run("lock_acquired", acquireLockRequest("test-key", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "test-key", mock.AnythingOfType("string"), 5*time.Second).Return(redis.NewBoolResult(true, nil))
	}, true))

	t.Run("lock_not_acquired", acquireLockRequest("test-key", 5*time.Second, func(m *MockRedisClient) {
		m.On("SetNX", mock.Anything, "test-key", mock.AnythingOfType("string"), 5*time.Second).Return(redis.NewBoolResult(false, nil))
	}, false))
}

func TestFareCache_ReleaseLock(t *testing.T) {
	acquire := func(t *testing.T, m *MockRedisClient, c *FareCache) string {
		t.Helper()

		var token string
		m.On("SetNX", mock.Anything, "test-key", mock.AnythingOfType("string"), time.Minute).
			Run(func(args mock.Arguments) { token = args.String(2) }).
			Return(redis.NewBoolResult(true, nil)).Once()

		ok, err := c.AcquireLock(context.Background(), "test-key", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)
		require.NotEmpty(t, token)

		return token
	}

	t.Run("deletes with the token it set", func(t *testing.T) {
		m := NewMockRedisClient(t)
		c := NewFareCache(m)
		token := acquire(t, m, c)

		m.On("Eval", mock.Anything, releaseLockScript, []string{"test-key"}, token).
			Return(redis.NewCmdResult(int64(1), nil)).Once()

		assert.NoError(t, c.ReleaseLock(context.Background(), "test-key"))
	})

	t.Run("expired lock held by someone else is kept", func(t *testing.T) {
		m := NewMockRedisClient(t)
		c := NewFareCache(m)
		token := acquire(t, m, c)

		m.On("Eval", mock.Anything, releaseLockScript, []string{"test-key"}, token).
			Return(redis.NewCmdResult(int64(0), nil)).Once()

		assert.ErrorContains(t, c.ReleaseLock(context.Background(), "test-key"), "expired")
	})

	t.Run("fresh tokens per acquire", func(t *testing.T) {
		m := NewMockRedisClient(t)
		first := acquire(t, m, NewFareCache(m))
		second := acquire(t, m, NewFareCache(m))

		assert.NotEqual(t, first, second)
	})

	t.Run("nothing held", func(t *testing.T) {
		m := NewMockRedisClient(t)

		assert.NoError(t, NewFareCache(m).ReleaseLock(context.Background(), "test-key"))
	})
}

func TestFareCache_GetFares_Closure(t *testing.T) {
	getFaresRequest := func(mockSetup func(m *MockRedisClient), want []dto.FlightRecord, wantFound, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			m := NewMockRedisClient(t)
			mockSetup(m)
			c := NewFareCache(m)

			got, found, err := c.GetFares(context.Background(), "test-cache")
			if (err != nil) != wantErr {
				t.Fatalf("GetFares error = %v, wantErr %v", err, wantErr)
			}
			assert.Equal(t, wantFound, found)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("GetFares mismatch (-want +got):\n%s", diff)
			}
		}
	}

	nonstop := true
	want := []dto.FlightRecord{{
		OriginCity: "Atlanta",
		DestCity:   "Cancun",
		DepartDate: cacheCriteria.DepartDate,
		ReturnDate: cacheCriteria.ReturnDate,
		Price:      412,
		Nonstop:    &nonstop,
	}}

	t.Run("hit", getFaresRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").Return(redis.NewStringResult(
			`[{"origin_city":"Atlanta","dest_city":"Cancun","depart_date":"2025-05-01","return_date":"2025-05-08","price":412,"nonstop":true}]`, nil))
	}, want, true, false))

	t.Run("miss", getFaresRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").Return(redis.NewStringResult("", redis.Nil))
	}, nil, false, false))

	t.Run("redis_error", getFaresRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").Return(redis.NewStringResult("", errors.New("connection refused")))
	}, nil, false, true))

	t.Run("corrupt_payload", getFaresRequest(func(m *MockRedisClient) {
		m.On("Get", mock.Anything, "test-cache").Return(redis.NewStringResult(`{"oops"`, nil))
	}, nil, false, true))
}

func TestCachedSource(t *testing.T) {
	key := "fare:cache:expedia:nonstop:Atlanta:Cancun:2025-05-01:2025-05-08"

	t.Run("miss fetches and stores", func(t *testing.T) {
		m := NewMockRedisClient(t)
		source := flightprovider.NewMockFareSource(t)

		fetched := []dto.FlightRecord{{OriginCity: "Atlanta", DestCity: "Cancun",
			DepartDate: cacheCriteria.DepartDate, ReturnDate: cacheCriteria.ReturnDate, Price: 300}}

		source.On("Name").Return("expedia")
		source.On("FetchNonstop", mock.Anything, cacheCriteria).Return(fetched, nil).Once()
		m.On("Get", mock.Anything, key).Return(redis.NewStringResult("", redis.Nil))
		m.On("Set", mock.Anything, key, mock.Anything, time.Hour).Return(redis.NewStatusResult("OK", nil))

		got, err := NewCachedSource(source, NewFareCache(m), time.Hour).FetchNonstop(context.Background(), cacheCriteria)
		require.NoError(t, err)
		assert.Equal(t, fetched, got)
	})

	t.Run("hit skips the source", func(t *testing.T) {
		m := NewMockRedisClient(t)
		source := flightprovider.NewMockFareSource(t)

		source.On("Name").Return("expedia")
		m.On("Get", mock.Anything, key).Return(redis.NewStringResult(`[]`, nil))

		got, err := NewCachedSource(source, NewFareCache(m), time.Hour).FetchNonstop(context.Background(), cacheCriteria)
		require.NoError(t, err)
		assert.Empty(t, got)
		source.AssertNotCalled(t, "FetchNonstop", mock.Anything, mock.Anything)
	})

	t.Run("fetch error is not cached", func(t *testing.T) {
		m := NewMockRedisClient(t)
		source := flightprovider.NewMockFareSource(t)

		source.On("Name").Return("expedia")
		source.On("FetchNonstop", mock.Anything, cacheCriteria).Return(nil, errors.New("render failed"))
		m.On("Get", mock.Anything, key).Return(redis.NewStringResult("", redis.Nil))

		_, err := NewCachedSource(source, NewFareCache(m), time.Hour).FetchNonstop(context.Background(), cacheCriteria)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLocalLock(t *testing.T) {
	lock := NewLocalLock()
	ctx := context.Background()

	ok, err := lock.AcquireLock(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = lock.AcquireLock(ctx, "k", time.Minute)
	assert.False(t, ok)

	require.NoError(t, lock.ReleaseLock(ctx, "k"))

	ok, _ = lock.AcquireLock(ctx, "k", time.Minute)
	assert.True(t, ok)
}
