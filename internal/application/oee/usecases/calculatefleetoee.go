package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/oee"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/goroutine"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type CalculateFleetOEEQuery struct {
	MachineSIDs []string
	Start       time.Time
	End         time.Time
}

type FleetMachineResult struct {
	MachineSID string     `json:"machine_sid"`
	OEE        float64    `json:"oee"`
	Error      bool       `json:"error"`
	Metrics    *OEEResult `json:"metrics,omitempty"`
}

type CalculateFleetOEEResult struct {
	Machines   []FleetMachineResult `json:"machines"`
	AverageOEE float64              `json:"average_oee"`
	Computed   int                  `json:"computed"`
	Failed     int                  `json:"failed"`
}

// CalculateFleetOEEUseCase fans the range calculation out across machines
// with a bounded worker pool. Each machine gets its own timeout; a machine
// with missing or erroring data contributes {oee:0, error:true} and never
// aborts the batch.
type CalculateFleetOEEUseCase struct {
	machineRepo    machine.Repository
	recordRepo     shift.RecordRepository
	workers        int
	machineTimeout time.Duration
	logger         logger.Interface
}

func NewCalculateFleetOEEUseCase(
	machineRepo machine.Repository,
	recordRepo shift.RecordRepository,
	workers int,
	machineTimeout time.Duration,
	logger logger.Interface,
) *CalculateFleetOEEUseCase {
	if workers <= 0 {
		workers = 8
	}
	if machineTimeout <= 0 {
		machineTimeout = 10 * time.Second
	}
	return &CalculateFleetOEEUseCase{
		machineRepo:    machineRepo,
		recordRepo:     recordRepo,
		workers:        workers,
		machineTimeout: machineTimeout,
		logger:         logger,
	}
}

func (uc *CalculateFleetOEEUseCase) Execute(ctx context.Context, query CalculateFleetOEEQuery) (*CalculateFleetOEEResult, error) {
	if len(query.MachineSIDs) == 0 {
		return nil, errors.NewValidationError("at least one machine SID is required")
	}
	if query.Start.IsZero() || query.End.IsZero() || !query.Start.Before(query.End) {
		return nil, errors.NewValidationError("a valid start/end range is required")
	}

	results := make([]FleetMachineResult, len(query.MachineSIDs))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i, sid := range query.MachineSIDs {
		wg.Add(1)
		sem <- struct{}{}
		i, sid := i, sid
		goroutine.SafeGo(uc.logger, "fleet-oee", func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = uc.computeOne(ctx, sid, query.Start, query.End)
		})
	}
	wg.Wait()

	result := &CalculateFleetOEEResult{Machines: results}
	var sum float64
	for _, r := range results {
		if r.Error {
			result.Failed++
			continue
		}
		sum += r.OEE
		result.Computed++
	}
	if result.Computed > 0 {
		result.AverageOEE = sum / float64(result.Computed)
	}

	uc.logger.Infow("fleet OEE computed",
		"machines", len(query.MachineSIDs),
		"computed", result.Computed,
		"failed", result.Failed)

	return result, nil
}

func (uc *CalculateFleetOEEUseCase) computeOne(ctx context.Context, sid string, start, end time.Time) FleetMachineResult {
	machineCtx, cancel := context.WithTimeout(ctx, uc.machineTimeout)
	defer cancel()

	m, err := uc.machineRepo.GetBySID(machineCtx, sid)
	if err != nil {
		uc.logger.Warnw("fleet OEE: machine lookup failed", "machine_sid", sid, "error", err)
		return FleetMachineResult{MachineSID: sid, Error: true}
	}

	metrics, err := computeRangeOEE(machineCtx, uc.recordRepo, m, start, end)
	if err != nil {
		uc.logger.Warnw("fleet OEE: calculation failed", "machine_sid", sid, "error", err)
		return FleetMachineResult{MachineSID: sid, Error: true}
	}

	return FleetMachineResult{
		MachineSID: sid,
		OEE:        metrics.OEE,
		Metrics:    toOEEResult(sid, metrics),
	}
}
