package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type ChangeMachineStatusCommand struct {
	MachineSID string
	// Target is one of stopped, maintenance, error, off_shift. Starting a
	// machine goes through the production context, which checks gates.
	Target string
}

// ChangeMachineStatusUseCase applies non-start transitions. Stopping never
// consults quality gates: a blocked machine must always be stoppable.
type ChangeMachineStatusUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewChangeMachineStatusUseCase(machineRepo machine.Repository, logger logger.Interface) *ChangeMachineStatusUseCase {
	return &ChangeMachineStatusUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *ChangeMachineStatusUseCase) Execute(ctx context.Context, cmd ChangeMachineStatusCommand) (*MachineResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		return nil, errors.NewNotFoundError("machine not found")
	}

	switch cmd.Target {
	case "stopped":
		err = m.Stop()
	case "maintenance":
		err = m.EnterMaintenance()
	case "error":
		err = m.ReportError()
	case "off_shift":
		err = m.GoOffShift()
	default:
		return nil, errors.NewValidationError("unsupported target status: " + cmd.Target)
	}
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update machine status", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewInternalError("failed to update machine")
	}

	uc.logger.Infow("machine status changed",
		"machine_sid", cmd.MachineSID,
		"status", m.Status().String())

	return toMachineResult(m), nil
}
