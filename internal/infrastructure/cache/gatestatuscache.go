package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopfloor-io/shopfloor/internal/application/quality/usecases"
)

const (
	// gateStatusKeyPrefix is the prefix for all cached gate evaluations
	gateStatusKeyPrefix = "gate_status:"

	// gateStatusTTL keeps cached evaluations short-lived. Operator dashboards
	// poll aggressively; a few seconds of staleness is acceptable there, while
	// start-machine decisions always evaluate fresh.
	gateStatusTTL = 10 * time.Second
)

// GateStatusCache is a read-through cache for quality gate evaluations.
type GateStatusCache struct {
	client *redis.Client
}

// NewGateStatusCache creates a new GateStatusCache instance
func NewGateStatusCache(client *redis.Client) *GateStatusCache {
	return &GateStatusCache{client: client}
}

func (c *GateStatusCache) buildKey(machineSID string) string {
	return gateStatusKeyPrefix + machineSID
}

// Get returns the cached evaluation for a machine, or nil on a miss.
func (c *GateStatusCache) Get(ctx context.Context, machineSID string) (*usecases.EvaluateQualityGateResult, error) {
	data, err := c.client.Get(ctx, c.buildKey(machineSID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached gate status: %w", err)
	}

	var result usecases.EvaluateQualityGateResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached gate status: %w", err)
	}

	return &result, nil
}

// Set stores an evaluation result with the cache TTL.
func (c *GateStatusCache) Set(ctx context.Context, machineSID string, result *usecases.EvaluateQualityGateResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal gate status: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(machineSID), data, gateStatusTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache gate status: %w", err)
	}

	return nil
}

// Invalidate drops the cached evaluation, used after recording a test so
// the next poll reflects the cleared gate immediately.
func (c *GateStatusCache) Invalidate(ctx context.Context, machineSID string) error {
	if err := c.client.Del(ctx, c.buildKey(machineSID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate gate status: %w", err)
	}
	return nil
}
