// Package dedup tracks recently seen webhook event ids so that at-least-once
// delivery stays idempotent. The in-memory tracker loses history on restart;
// the Redis tracker shares history across replicas.
package dedup

import (
	"context"
	"sync"
	"time"
)

// DefaultWindow is the retention window for processed event ids.
const DefaultWindow = 24 * time.Hour

// MemoryTracker is a mutex-guarded map of event id to first-seen time.
// Entries older than the window are swept inline on every call, which keeps
// the map bounded in steady state. Memory still grows with burst traffic
// between sweeps; there is no size cap.
type MemoryTracker struct {
	mu     sync.Mutex
	seen   map[string]time.Time
	window time.Duration
	now    func() time.Time
}

// NewMemoryTracker creates a tracker with the given retention window.
// A non-positive window falls back to DefaultWindow.
func NewMemoryTracker(window time.Duration) *MemoryTracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryTracker{
		seen:   make(map[string]time.Time),
		window: window,
		now:    time.Now,
	}
}

// IsDuplicate reports whether eventID was already seen within the window,
// recording it as seen if not. Insert and sweep run under one lock, so two
// concurrent deliveries of the same id cannot both observe "new".
func (t *MemoryTracker) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[eventID]; ok {
		return true, nil
	}
	t.seen[eventID] = now

	for id, firstSeen := range t.seen {
		if now.Sub(firstSeen) > t.window {
			delete(t.seen, id)
		}
	}

	return false, nil
}

// Len reports the number of tracked ids. Test helper.
func (t *MemoryTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
