package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/oee"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type CalculateCurrentShiftOEEQuery struct {
	MachineSID string
	OperatorID uint
}

// CalculateCurrentShiftOEEUseCase computes OEE over the elapsed portion of
// the current shift. With an operator it reads that operator's open record;
// without one it aggregates every open record on the machine, so a machine
// crewed by two operators still answers "how is the current shift going".
type CalculateCurrentShiftOEEUseCase struct {
	machineRepo machine.Repository
	recordRepo  shift.RecordRepository
	logger      logger.Interface
}

func NewCalculateCurrentShiftOEEUseCase(
	machineRepo machine.Repository,
	recordRepo shift.RecordRepository,
	logger logger.Interface,
) *CalculateCurrentShiftOEEUseCase {
	return &CalculateCurrentShiftOEEUseCase{
		machineRepo: machineRepo,
		recordRepo:  recordRepo,
		logger:      logger,
	}
}

func (uc *CalculateCurrentShiftOEEUseCase) Execute(ctx context.Context, query CalculateCurrentShiftOEEQuery) (*OEEResult, error) {
	if query.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, query.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", query.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	records, err := uc.openRecords(ctx, m.ID(), query.OperatorID)
	if err != nil {
		return nil, err
	}

	in := oee.Input{ProductionSpeed: m.ProductionSpeed()}
	for _, r := range records {
		in.RuntimeMinutes += r.RuntimeMinutes()
		in.DowntimeMinutes += r.DowntimeMinutes()
		in.TotalProduction += r.TotalProduction()
		in.TotalTests += r.QualityTestsCount()
		in.ApprovedTests += r.ApprovedTestsCount()
	}

	metrics, err := oee.Calculate(in)
	if err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	return toOEEResult(query.MachineSID, metrics), nil
}

func (uc *CalculateCurrentShiftOEEUseCase) openRecords(ctx context.Context, machineID, operatorID uint) ([]*shift.Record, error) {
	if operatorID != 0 {
		open, err := uc.recordRepo.FindOpen(ctx, machineID, operatorID)
		if err != nil {
			return nil, errors.NewNotFoundError("no open shift record")
		}
		return []*shift.Record{open}, nil
	}

	records, err := uc.recordRepo.ListOpenByMachine(ctx, machineID)
	if err != nil {
		uc.logger.Errorw("failed to list open shift records", "error", err, "machine_id", machineID)
		return nil, errors.NewInternalError("failed to load open shift records")
	}
	if len(records) == 0 {
		return nil, errors.NewNotFoundError("no open shift record")
	}
	return records, nil
}
