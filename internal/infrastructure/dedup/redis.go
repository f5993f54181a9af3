package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "webhook:event:"

// RedisTracker records seen event ids in Redis with a TTL equal to the
// retention window. SET NX makes check-and-record a single atomic operation,
// so dedup holds across replicas as well as across goroutines.
type RedisTracker struct {
	client *redis.Client
	window time.Duration
}

// NewRedisTracker creates a Redis-backed tracker.
func NewRedisTracker(client *redis.Client, window time.Duration) *RedisTracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisTracker{client: client, window: window}
}

// IsDuplicate reports whether eventID is already recorded, recording it with
// the window TTL if not.
func (t *RedisTracker) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	stored, err := t.client.SetNX(ctx, redisKeyPrefix+eventID, time.Now().UTC().Format(time.RFC3339), t.window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record event id: %w", err)
	}
	return !stored, nil
}
