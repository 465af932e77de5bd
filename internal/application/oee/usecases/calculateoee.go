package usecases

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/oee"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type CalculateOEEQuery struct {
	MachineSID string
	Start      time.Time
	End        time.Time
}

type OEEResult struct {
	MachineSID      string  `json:"machine_sid"`
	Availability    float64 `json:"availability"`
	Performance     float64 `json:"performance"`
	Quality         float64 `json:"quality"`
	OEE             float64 `json:"oee"`
	RuntimeMinutes  int     `json:"runtime_minutes"`
	DowntimeMinutes int     `json:"downtime_minutes"`
	TotalProduction int     `json:"total_production"`
}

type CalculateOEEUseCase struct {
	machineRepo machine.Repository
	recordRepo  shift.RecordRepository
	logger      logger.Interface
}

func NewCalculateOEEUseCase(
	machineRepo machine.Repository,
	recordRepo shift.RecordRepository,
	logger logger.Interface,
) *CalculateOEEUseCase {
	return &CalculateOEEUseCase{
		machineRepo: machineRepo,
		recordRepo:  recordRepo,
		logger:      logger,
	}
}

func (uc *CalculateOEEUseCase) Execute(ctx context.Context, query CalculateOEEQuery) (*OEEResult, error) {
	if err := uc.validateQuery(query); err != nil {
		return nil, err
	}

	m, err := uc.machineRepo.GetBySID(ctx, query.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", query.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	metrics, err := computeRangeOEE(ctx, uc.recordRepo, m, query.Start, query.End)
	if err != nil {
		uc.logger.Errorw("failed to compute OEE", "error", err, "machine_sid", query.MachineSID)
		return nil, err
	}

	return toOEEResult(query.MachineSID, metrics), nil
}

func (uc *CalculateOEEUseCase) validateQuery(query CalculateOEEQuery) error {
	if query.MachineSID == "" {
		return errors.NewValidationError("machine SID is required")
	}
	if query.Start.IsZero() || query.End.IsZero() {
		return errors.NewValidationError("start and end are required")
	}
	if !query.Start.Before(query.End) {
		return errors.NewValidationError("start must be before end")
	}
	return nil
}

// computeRangeOEE sums the shift records overlapping [start, end) and
// applies the OEE formulas to the aggregate.
func computeRangeOEE(ctx context.Context, recordRepo shift.RecordRepository, m *machine.Machine, start, end time.Time) (oee.Metrics, error) {
	records, err := recordRepo.FindOverlapping(ctx, m.ID(), start, end)
	if err != nil {
		return oee.Metrics{}, errors.NewInternalError("failed to load shift records")
	}

	var in oee.Input
	in.ProductionSpeed = m.ProductionSpeed()
	for _, r := range records {
		in.RuntimeMinutes += r.RuntimeMinutes()
		in.DowntimeMinutes += r.DowntimeMinutes()
		in.TotalProduction += r.TotalProduction()
		in.TotalTests += r.QualityTestsCount()
		in.ApprovedTests += r.ApprovedTestsCount()
	}

	metrics, err := oee.Calculate(in)
	if err != nil {
		return oee.Metrics{}, errors.NewInternalError(err.Error())
	}
	return metrics, nil
}

func toOEEResult(machineSID string, m oee.Metrics) *OEEResult {
	return &OEEResult{
		MachineSID:      machineSID,
		Availability:    m.Availability,
		Performance:     m.Performance,
		Quality:         m.Quality,
		OEE:             m.OEE,
		RuntimeMinutes:  m.RuntimeMinutes,
		DowntimeMinutes: m.DowntimeMinutes,
		TotalProduction: m.TotalProduction,
	}
}
