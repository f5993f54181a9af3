package ports

import "context"

// EventTracker makes webhook delivery idempotent under at-least-once
// semantics. Implementations must be safe for concurrent use: two
// simultaneous calls with the same event id must not both observe "new".
type EventTracker interface {
	// IsDuplicate records eventID as seen and reports whether it had
	// already been seen within the retention window.
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
}
