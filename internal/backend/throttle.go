package backend

import (
	"context"
	"sync"
	"time"
)

// throttle enforces a minimum spacing between successive polls.
type throttle struct {
	spacing time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(spacing time.Duration) *throttle {
	return &throttle{spacing: spacing}
}

// wait blocks until the next slot opens or ctx ends. It reports whether the
// slot was taken.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.spacing <= 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.spacing)
	t.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
