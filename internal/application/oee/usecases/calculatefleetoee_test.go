package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

func TestCalculateFleetOEEUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	end := start.Add(12 * time.Hour)

	t.Run("OneFailingMachineDoesNotAbortFleet", func(t *testing.T) {
		good := newTestMachine(t)
		machineRepo := &mockMachineRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*machine.Machine, error) {
				if sid == "mach-broken" {
					return nil, errors.NewNotFoundError("not found")
				}
				return good, nil
			},
		}
		recordRepo := &mockRecordRepository{
			FindOverlappingFunc: func(ctx context.Context, machineID uint, s, e time.Time) ([]*shift.Record, error) {
				return []*shift.Record{newShiftRecord(t, machineID)}, nil
			},
		}

		uc := NewCalculateFleetOEEUseCase(machineRepo, recordRepo, 4, time.Second, &mockLogger{})
		result, err := uc.Execute(ctx, CalculateFleetOEEQuery{
			MachineSIDs: []string{good.SID(), "mach-broken"},
			Start:       start,
			End:         end,
		})

		require.NoError(t, err)
		require.Len(t, result.Machines, 2)
		assert.Equal(t, 1, result.Computed)
		assert.Equal(t, 1, result.Failed)

		assert.InDelta(t, 45.0, result.Machines[0].OEE, 0.001)
		assert.False(t, result.Machines[0].Error)
		require.NotNil(t, result.Machines[0].Metrics)

		assert.Zero(t, result.Machines[1].OEE)
		assert.True(t, result.Machines[1].Error)
		assert.Nil(t, result.Machines[1].Metrics)

		assert.InDelta(t, 45.0, result.AverageOEE, 0.001)
	})

	t.Run("ResultsKeepRequestOrder", func(t *testing.T) {
		m := newTestMachine(t)
		machineRepo := &mockMachineRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*machine.Machine, error) { return m, nil },
		}
		recordRepo := &mockRecordRepository{
			FindOverlappingFunc: func(ctx context.Context, machineID uint, s, e time.Time) ([]*shift.Record, error) {
				return nil, nil
			},
		}

		sids := []string{"mach-a", "mach-b", "mach-c", "mach-d", "mach-e"}
		uc := NewCalculateFleetOEEUseCase(machineRepo, recordRepo, 2, time.Second, &mockLogger{})
		result, err := uc.Execute(ctx, CalculateFleetOEEQuery{MachineSIDs: sids, Start: start, End: end})

		require.NoError(t, err)
		require.Len(t, result.Machines, len(sids))
		for i, sid := range sids {
			assert.Equal(t, sid, result.Machines[i].MachineSID)
		}
		assert.Equal(t, len(sids), result.Computed)
	})

	t.Run("Validation", func(t *testing.T) {
		uc := NewCalculateFleetOEEUseCase(&mockMachineRepository{}, &mockRecordRepository{}, 4, time.Second, &mockLogger{})

		_, err := uc.Execute(ctx, CalculateFleetOEEQuery{Start: start, End: end})
		assert.True(t, errors.IsValidationError(err))

		_, err = uc.Execute(ctx, CalculateFleetOEEQuery{MachineSIDs: []string{"mach-1"}})
		assert.True(t, errors.IsValidationError(err))
	})
}
