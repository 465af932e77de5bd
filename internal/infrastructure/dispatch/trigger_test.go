package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alertingUC "github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type mockMachineRepository struct {
	GetByIDFunc func(ctx context.Context, machineID uint) (*machine.Machine, error)
}

func (m *mockMachineRepository) Create(ctx context.Context, mach *machine.Machine) error { return nil }

func (m *mockMachineRepository) GetByID(ctx context.Context, machineID uint) (*machine.Machine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, machineID)
	}
	return nil, nil
}

func (m *mockMachineRepository) GetBySID(ctx context.Context, sid string) (*machine.Machine, error) {
	return nil, nil
}

func (m *mockMachineRepository) Update(ctx context.Context, mach *machine.Machine) error { return nil }

func (m *mockMachineRepository) List(ctx context.Context, limit, offset int) ([]*machine.Machine, int64, error) {
	return nil, 0, nil
}

func (m *mockMachineRepository) ListIDs(ctx context.Context) ([]uint, error) { return nil, nil }

type mockDispatchExecutor struct {
	ExecuteFunc func(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error)
}

func (m *mockDispatchExecutor) Execute(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &alertingUC.DispatchAlertsResult{MachineSID: cmd.MachineSID}, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newTestMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m, err := machine.NewMachine("Extruder 3", 2.5, 1200, "A")
	require.NoError(t, err)
	require.NoError(t, m.SetID(42))
	return m
}

func TestTrigger_HandleProductionRecorded(t *testing.T) {
	t.Run("runs a dispatch sweep for the reporting machine", func(t *testing.T) {
		m := newTestMachine(t)
		machineRepo := &mockMachineRepository{
			GetByIDFunc: func(ctx context.Context, machineID uint) (*machine.Machine, error) {
				assert.Equal(t, m.ID(), machineID)
				return m, nil
			},
		}

		var dispatched []string
		executor := &mockDispatchExecutor{
			ExecuteFunc: func(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error) {
				dispatched = append(dispatched, cmd.MachineSID)
				return &alertingUC.DispatchAlertsResult{MachineSID: cmd.MachineSID}, nil
			},
		}

		trigger := NewTrigger(machineRepo, executor, &mockLogger{})
		event := shift.NewProductionRecordedEvent(m.ID(), 5, 7, 25, biztime.NowUTC())

		err := trigger.handleProductionRecorded(event)
		require.NoError(t, err)
		require.Len(t, dispatched, 1)
		assert.Equal(t, m.SID(), dispatched[0])
	})

	t.Run("unknown machine is logged, never retried", func(t *testing.T) {
		machineRepo := &mockMachineRepository{
			GetByIDFunc: func(ctx context.Context, machineID uint) (*machine.Machine, error) {
				return nil, errors.NewNotFoundError("machine not found")
			},
		}
		executeCalled := false
		executor := &mockDispatchExecutor{
			ExecuteFunc: func(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error) {
				executeCalled = true
				return nil, nil
			},
		}

		trigger := NewTrigger(machineRepo, executor, &mockLogger{})
		event := shift.NewProductionRecordedEvent(99, 5, 7, 25, biztime.NowUTC())

		err := trigger.handleProductionRecorded(event)
		require.NoError(t, err)
		assert.False(t, executeCalled)
	})

	t.Run("dispatch failure is swallowed", func(t *testing.T) {
		m := newTestMachine(t)
		machineRepo := &mockMachineRepository{
			GetByIDFunc: func(ctx context.Context, machineID uint) (*machine.Machine, error) {
				return m, nil
			},
		}
		executor := &mockDispatchExecutor{
			ExecuteFunc: func(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error) {
				return nil, errors.NewInternalError("gate states unavailable")
			},
		}

		trigger := NewTrigger(machineRepo, executor, &mockLogger{})
		event := shift.NewProductionRecordedEvent(m.ID(), 5, 7, 25, biztime.NowUTC())

		assert.NoError(t, trigger.handleProductionRecorded(event))
	})

	t.Run("foreign event types are ignored", func(t *testing.T) {
		executeCalled := false
		executor := &mockDispatchExecutor{
			ExecuteFunc: func(ctx context.Context, cmd alertingUC.DispatchAlertsCommand) (*alertingUC.DispatchAlertsResult, error) {
				executeCalled = true
				return nil, nil
			},
		}

		trigger := NewTrigger(&mockMachineRepository{}, executor, &mockLogger{})
		event := shift.NewArchivedEvent(7, 42, 5, vo.ShiftTypeDay, biztime.NowUTC())

		require.NoError(t, trigger.handleProductionRecorded(event))
		assert.False(t, executeCalled)
	})
}

func TestTrigger_Subscribe(t *testing.T) {
	dispatcher := events.NewInMemoryEventDispatcher(10)
	trigger := NewTrigger(&mockMachineRepository{}, &mockDispatchExecutor{}, &mockLogger{})

	require.NoError(t, trigger.Subscribe(dispatcher))
}
