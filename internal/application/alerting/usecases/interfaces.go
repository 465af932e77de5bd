package usecases

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
)

// GateStateProvider assembles per-config evaluation state for a machine.
type GateStateProvider interface {
	StatesFor(ctx context.Context, machineID uint) ([]quality.ConfigState, error)
}

// DispatchLock is the fast-path guard against concurrent dispatch sweeps
// hammering the same machine. The storage-level unique constraint on active
// alerts is the correctness backstop; losing the lock only skips work.
type DispatchLock interface {
	TryAcquire(ctx context.Context, machineID, configID uint, ttl time.Duration) (bool, error)
	Release(ctx context.Context, machineID, configID uint) error
}

type DispatchAlertsExecutor interface {
	Execute(ctx context.Context, cmd DispatchAlertsCommand) (*DispatchAlertsResult, error)
}

type AcknowledgeAlertExecutor interface {
	Execute(ctx context.Context, cmd AcknowledgeAlertCommand) (*AcknowledgeAlertResult, error)
}

type ListActiveAlertsExecutor interface {
	Execute(ctx context.Context, query ListActiveAlertsQuery) (*ListActiveAlertsResult, error)
}
