package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type RegisterMachineCommand struct {
	Name             string
	ProductionSpeed  float64
	TargetProduction int
	TeamCode         string
}

type MachineResult struct {
	MachineSID       string  `json:"machine_sid"`
	Name             string  `json:"name"`
	Status           string  `json:"status"`
	ProductionSpeed  float64 `json:"production_speed"`
	TargetProduction int     `json:"target_production"`
	TeamCode         string  `json:"team_code"`
}

type RegisterMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewRegisterMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *RegisterMachineUseCase {
	return &RegisterMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *RegisterMachineUseCase) Execute(ctx context.Context, cmd RegisterMachineCommand) (*MachineResult, error) {
	m, err := machine.NewMachine(cmd.Name, cmd.ProductionSpeed, cmd.TargetProduction, cmd.TeamCode)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.machineRepo.Create(ctx, m); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("machine already exists")
		}
		uc.logger.Errorw("failed to create machine", "error", err, "name", cmd.Name)
		return nil, errors.NewInternalError("failed to create machine")
	}

	uc.logger.Infow("machine registered", "machine_sid", m.SID(), "name", cmd.Name)

	return toMachineResult(m), nil
}

func toMachineResult(m *machine.Machine) *MachineResult {
	return &MachineResult{
		MachineSID:       m.SID(),
		Name:             m.Name(),
		Status:           m.Status().String(),
		ProductionSpeed:  m.ProductionSpeed(),
		TargetProduction: m.TargetProduction(),
		TeamCode:         m.TeamCode(),
	}
}
