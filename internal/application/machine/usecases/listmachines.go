package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type ListMachinesQuery struct {
	Limit  int
	Offset int
}

type ListMachinesResult struct {
	Machines []MachineResult `json:"machines"`
	Total    int64           `json:"total"`
}

type ListMachinesUseCase struct {
	machineRepo machine.Repository
	logger      logger.Interface
}

func NewListMachinesUseCase(machineRepo machine.Repository, logger logger.Interface) *ListMachinesUseCase {
	return &ListMachinesUseCase{
		machineRepo: machineRepo,
		logger:      logger,
	}
}

func (uc *ListMachinesUseCase) Execute(ctx context.Context, query ListMachinesQuery) (*ListMachinesResult, error) {
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	machines, total, err := uc.machineRepo.List(ctx, limit, offset)
	if err != nil {
		uc.logger.Errorw("failed to list machines", "error", err)
		return nil, errors.NewInternalError("failed to list machines")
	}

	result := &ListMachinesResult{
		Machines: make([]MachineResult, 0, len(machines)),
		Total:    total,
	}
	for _, m := range machines {
		result.Machines = append(result.Machines, *toMachineResult(m))
	}

	return result, nil
}
