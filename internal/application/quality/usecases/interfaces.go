package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
)

// GateStateProvider assembles per-config evaluation state for a machine.
type GateStateProvider interface {
	StatesFor(ctx context.Context, machineID uint) ([]quality.ConfigState, error)
}

type EvaluateQualityGateExecutor interface {
	Execute(ctx context.Context, query EvaluateQualityGateQuery) (*EvaluateQualityGateResult, error)
}

type RecordQualityTestExecutor interface {
	Execute(ctx context.Context, cmd RecordQualityTestCommand) (*RecordQualityTestResult, error)
}

type CreateGateConfigExecutor interface {
	Execute(ctx context.Context, cmd CreateGateConfigCommand) (*CreateGateConfigResult, error)
}
