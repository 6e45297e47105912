package lock

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLockerExclusive(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	token, ok, err := l.Lock(ctx, "teacher:a", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first lock = (%v, %v), want acquired", ok, err)
	}
	if token == "" {
		t.Fatal("acquired lock should carry a token")
	}

	if _, ok, err := l.Lock(ctx, "teacher:a", time.Minute); err != nil || ok {
		t.Fatalf("second lock = (%v, %v), want held", ok, err)
	}

	// A different key is independent
	if _, ok, err := l.Lock(ctx, "teacher:b", time.Minute); err != nil || !ok {
		t.Fatalf("other key lock = (%v, %v), want acquired", ok, err)
	}

	if err := l.Unlock(ctx, "teacher:a", token); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, ok, err := l.Lock(ctx, "teacher:a", time.Minute); err != nil || !ok {
		t.Fatalf("relock = (%v, %v), want acquired after unlock", ok, err)
	}
}

func TestMemoryLockerTTLExpiry(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	if _, ok, _ := l.Lock(ctx, "k", 10*time.Millisecond); !ok {
		t.Fatal("initial lock should be acquired")
	}

	time.Sleep(20 * time.Millisecond)

	// Holder expired; the key is free again
	if _, ok, _ := l.Lock(ctx, "k", time.Minute); !ok {
		t.Fatal("expired lock should be reacquirable")
	}
}

func TestMemoryLockerStaleTokenUnlock(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	stale, ok, _ := l.Lock(ctx, "k", 10*time.Millisecond)
	if !ok {
		t.Fatal("initial lock should be acquired")
	}

	time.Sleep(20 * time.Millisecond)

	// A second request takes over the expired key
	current, ok, _ := l.Lock(ctx, "k", time.Minute)
	if !ok {
		t.Fatal("expired lock should be reacquirable")
	}

	// The first holder's late unlock must not release the new acquisition
	if err := l.Unlock(ctx, "k", stale); err != nil {
		t.Fatalf("stale unlock: %v", err)
	}
	if _, ok, _ := l.Lock(ctx, "k", time.Minute); ok {
		t.Fatal("key released by a stale token")
	}

	// The current holder can still release it
	if err := l.Unlock(ctx, "k", current); err != nil {
		t.Fatalf("current unlock: %v", err)
	}
	if _, ok, _ := l.Lock(ctx, "k", time.Minute); !ok {
		t.Fatal("key should be free after the current holder unlocks")
	}
}

func TestAcquireWaitsForUnlock(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	token, ok, _ := l.Lock(ctx, "k", time.Minute)
	if !ok {
		t.Fatal("initial lock should be acquired")
	}

	done := make(chan error, 1)
	go func() {
		_, err := Acquire(ctx, l, "k", time.Minute)
		done <- err
	}()

	select {
	case err := <-done:
		t.Fatalf("Acquire returned %v before unlock", err)
	case <-time.After(30 * time.Millisecond):
	}

	l.Unlock(ctx, "k", token)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Acquire after unlock: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not return after unlock")
	}
}

func TestAcquireContextCancelled(t *testing.T) {
	l := NewMemoryLocker()
	if _, ok, _ := l.Lock(context.Background(), "k", time.Minute); !ok {
		t.Fatal("initial lock should be acquired")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := Acquire(ctx, l, "k", time.Minute); err != context.DeadlineExceeded {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
}
