package usecases

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/application/production/services"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
)

// TransactionRunner executes fn atomically; repositories called with the
// derived context join the same database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ShiftSessionProvider resolves and materializes the active shift for a
// (machine, operator) pair.
type ShiftSessionProvider interface {
	EnsureOpenRecord(ctx context.Context, m *machine.Machine, operatorID uint, now time.Time) (*services.Session, error)
}

// GateStateProvider assembles per-config evaluation state for a machine.
type GateStateProvider interface {
	StatesFor(ctx context.Context, machineID uint) ([]quality.ConfigState, error)
}

type ResolveShiftExecutor interface {
	Execute(ctx context.Context, cmd ResolveShiftCommand) (*ShiftRecordResult, error)
}

type RecordProductionDeltaExecutor interface {
	Execute(ctx context.Context, cmd RecordProductionDeltaCommand) (*ShiftRecordResult, error)
}

type StartMachineExecutor interface {
	Execute(ctx context.Context, cmd StartMachineCommand) (*StartMachineResult, error)
}

type SetHandoverNoteExecutor interface {
	Execute(ctx context.Context, cmd SetHandoverNoteCommand) (*ShiftRecordResult, error)
}

type ArchiveElapsedShiftsExecutor interface {
	Execute(ctx context.Context, cmd ArchiveElapsedShiftsCommand) (*ArchiveElapsedShiftsResult, error)
}
