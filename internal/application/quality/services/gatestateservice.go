// Package services assembles the external state quality-gate evaluation
// runs against.
package services

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// GateStateService loads, per active gate config, the latest test baseline
// and the production delta sum recorded after it. The delta log survives
// shift rollovers, so the count condition keeps accumulating across
// archived records.
type GateStateService struct {
	configRepo quality.GateConfigRepository
	testRepo   quality.TestRecordRepository
	deltaRepo  shift.DeltaRepository
	logger     logger.Interface
}

func NewGateStateService(
	configRepo quality.GateConfigRepository,
	testRepo quality.TestRecordRepository,
	deltaRepo shift.DeltaRepository,
	logger logger.Interface,
) *GateStateService {
	return &GateStateService{
		configRepo: configRepo,
		testRepo:   testRepo,
		deltaRepo:  deltaRepo,
		logger:     logger,
	}
}

// StatesFor returns one ConfigState per active config on the machine.
// A machine with no configs yields an empty slice, which evaluates to OK.
func (s *GateStateService) StatesFor(ctx context.Context, machineID uint) ([]quality.ConfigState, error) {
	configs, err := s.configRepo.ListActiveByMachine(ctx, machineID)
	if err != nil {
		return nil, err
	}

	states := make([]quality.ConfigState, 0, len(configs))
	for _, cfg := range configs {
		state := quality.ConfigState{Config: cfg}

		latest, err := s.testRepo.FindLatest(ctx, machineID, cfg.ID())
		if err != nil {
			return nil, err
		}

		// With no baseline the count condition covers the entire delta log.
		var since time.Time
		if latest != nil {
			testDate := latest.TestDate
			state.LastTestDate = &testDate
			since = testDate
		}

		units, err := s.deltaRepo.SumProducedSince(ctx, machineID, since)
		if err != nil {
			return nil, err
		}
		state.UnitsSinceLastTest = units

		states = append(states, state)
	}

	return states, nil
}
