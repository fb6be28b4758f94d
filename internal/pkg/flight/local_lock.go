package flight

import (
	"context"
	"sync"
	"time"
)

// LocalLock is the in-process sweep lock used when Redis is not configured.
// Expiry is not enforced; a holder always releases.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]struct{})}
}

func (l *LocalLock) GetLockKey(origin string) string {
	return SweepLockKey(origin)
}

func (l *LocalLock) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return false, nil
	}

	l.held[key] = struct{}{}

	return true, nil
}

func (l *LocalLock) ReleaseLock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)

	return nil
}
