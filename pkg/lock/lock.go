// Package lock provides per-key mutual exclusion for the booking write path.
// The conflict check and the subsequent insert must not interleave for the
// same teacher, so the booking service holds the teacher's lock across both.
package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Locker interface {
	// Lock attempts to acquire the key without blocking. On success it
	// returns a token identifying this acquisition; Unlock only releases
	// the key when presented with the matching token, so a holder that
	// outlived its TTL cannot free a lock someone else now owns.
	Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key, token string) error
}

// Acquire polls Lock until it succeeds or ctx is done.
func Acquire(ctx context.Context, l Locker, key string, ttl time.Duration) (string, error) {
	for {
		token, ok, err := l.Lock(ctx, key, ttl)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
}

type lease struct {
	token  string
	expiry time.Time
}

// MemoryLocker is the single-node Locker. Held keys expire after their TTL so
// a crashed request cannot wedge a teacher's calendar.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]lease
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]lease)}
}

func (m *MemoryLocker) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.held[key]; ok && time.Now().Before(l.expiry) {
		return "", false, nil
	}
	token := uuid.NewString()
	m.held[key] = lease{token: token, expiry: time.Now().Add(ttl)}
	return token, true, nil
}

func (m *MemoryLocker) Unlock(ctx context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.held[key]; ok && l.token == token {
		delete(m.held, key)
	}
	return nil
}
