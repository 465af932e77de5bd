package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// dispatchLockKeyPrefix is the prefix for all alert dispatch lock keys
const dispatchLockKeyPrefix = "alert_dispatch_lock:"

// AlertDispatchLock is a Redis-backed fast path that keeps concurrent gate
// sweeps from double-dispatching the same alert. It is advisory only; the
// unique constraint on active alerts is the correctness backstop, so lock
// failures degrade to the database check instead of failing the dispatch.
type AlertDispatchLock struct {
	client *redis.Client
}

// NewAlertDispatchLock creates a new AlertDispatchLock instance
func NewAlertDispatchLock(client *redis.Client) *AlertDispatchLock {
	return &AlertDispatchLock{client: client}
}

// buildKey builds the Redis key for a machine/config pair
// Format: alert_dispatch_lock:{machine_id}:{config_id}
func (l *AlertDispatchLock) buildKey(machineID, configID uint) string {
	return fmt.Sprintf("%s%d:%d", dispatchLockKeyPrefix, machineID, configID)
}

// TryAcquire attempts to take the dispatch lock for a machine/config pair.
// Returns false when another dispatcher already holds it.
func (l *AlertDispatchLock) TryAcquire(ctx context.Context, machineID, configID uint, ttl time.Duration) (bool, error) {
	key := l.buildKey(machineID, configID)

	ok, err := l.client.SetNX(ctx, key, time.Now().UnixMilli(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire dispatch lock: %w", err)
	}

	return ok, nil
}

// Release frees the lock early, typically after the alert resolves so a
// re-triggered gate can alert again without waiting out the TTL.
func (l *AlertDispatchLock) Release(ctx context.Context, machineID, configID uint) error {
	key := l.buildKey(machineID, configID)

	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release dispatch lock: %w", err)
	}

	return nil
}
