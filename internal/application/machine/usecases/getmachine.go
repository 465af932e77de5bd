package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type GetMachineQuery struct {
	MachineSID string
}

type GetMachineUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewGetMachineUseCase(machineRepo machine.Repository, logger logger.Interface) *GetMachineUseCase {
	return &GetMachineUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *GetMachineUseCase) Execute(ctx context.Context, query GetMachineQuery) (*MachineResult, error) {
	if query.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, query.MachineSID)
	if err != nil {
		return nil, errors.NewNotFoundError("machine not found")
	}

	return toMachineResult(m), nil
}
