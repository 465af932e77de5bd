package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type StartMachineCommand struct {
	MachineSID string
	OperatorID uint
}

type StartMachineResult struct {
	MachineSID string `json:"machine_sid"`
	Status     string `json:"status"`
}

// StartMachineUseCase transitions a machine into production, rejected with
// a distinct business-rule error while any blocking quality gate is pending.
// Advisory gates never block.
type StartMachineUseCase struct {
	machineRepo machine.Repository
	states      GateStateProvider
	logger      logger.Interface
}

func NewStartMachineUseCase(
	machineRepo machine.Repository,
	states GateStateProvider,
	logger logger.Interface,
) *StartMachineUseCase {
	return &StartMachineUseCase{
		machineRepo: machineRepo,
		states:      states,
		logger:      logger,
	}
}

func (uc *StartMachineUseCase) Execute(ctx context.Context, cmd StartMachineCommand) (*StartMachineResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	states, err := uc.states.StatesFor(ctx, m.ID())
	if err != nil {
		uc.logger.Errorw("failed to load gate states", "error", err, "machine_id", m.ID())
		return nil, errors.NewInternalError("failed to load gate states")
	}

	status := quality.Evaluate(states, biztime.NowUTC())
	if reason, blocked := status.BlockingReason(); blocked {
		uc.logger.Warnw("machine start blocked by quality gate",
			"machine_sid", cmd.MachineSID,
			"test_name", reason.TestName,
			"code", string(reason.Code))
		return nil, errors.ErrProductionBlocked(cmd.MachineSID, reason.TestName)
	}

	if err := m.Start(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewInternalError("failed to update machine")
	}

	uc.logger.Infow("machine started",
		"machine_sid", cmd.MachineSID,
		"operator_id", cmd.OperatorID)

	return &StartMachineResult{
		MachineSID: cmd.MachineSID,
		Status:     m.Status().String(),
	}, nil
}
