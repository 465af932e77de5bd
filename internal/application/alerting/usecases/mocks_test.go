package usecases

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type mockMachineRepository struct {
	CreateFunc   func(ctx context.Context, m *machine.Machine) error
	GetByIDFunc  func(ctx context.Context, machineID uint) (*machine.Machine, error)
	GetBySIDFunc func(ctx context.Context, sid string) (*machine.Machine, error)
	UpdateFunc   func(ctx context.Context, m *machine.Machine) error
	ListFunc     func(ctx context.Context, limit, offset int) ([]*machine.Machine, int64, error)
	ListIDsFunc  func(ctx context.Context) ([]uint, error)
}

func (m *mockMachineRepository) Create(ctx context.Context, mach *machine.Machine) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mach)
	}
	return nil
}

func (m *mockMachineRepository) GetByID(ctx context.Context, machineID uint) (*machine.Machine, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, machineID)
	}
	return nil, nil
}

func (m *mockMachineRepository) GetBySID(ctx context.Context, sid string) (*machine.Machine, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockMachineRepository) Update(ctx context.Context, mach *machine.Machine) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, mach)
	}
	return nil
}

func (m *mockMachineRepository) List(ctx context.Context, limit, offset int) ([]*machine.Machine, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockMachineRepository) ListIDs(ctx context.Context) ([]uint, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx)
	}
	return nil, nil
}

type mockAlertRepository struct {
	CreateIfNoneActiveFunc  func(ctx context.Context, a *alert.ProductionAlert) error
	UpdateFunc              func(ctx context.Context, a *alert.ProductionAlert) error
	GetByIDFunc             func(ctx context.Context, alertID uint) (*alert.ProductionAlert, error)
	GetBySIDFunc            func(ctx context.Context, sid string) (*alert.ProductionAlert, error)
	FindActiveFunc          func(ctx context.Context, machineID, configID uint) (*alert.ProductionAlert, error)
	ListActiveByMachineFunc func(ctx context.Context, machineID uint) ([]*alert.ProductionAlert, error)
	ListActiveFunc          func(ctx context.Context) ([]*alert.ProductionAlert, error)
}

func (m *mockAlertRepository) CreateIfNoneActive(ctx context.Context, a *alert.ProductionAlert) error {
	if m.CreateIfNoneActiveFunc != nil {
		return m.CreateIfNoneActiveFunc(ctx, a)
	}
	return nil
}

func (m *mockAlertRepository) Update(ctx context.Context, a *alert.ProductionAlert) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAlertRepository) GetByID(ctx context.Context, alertID uint) (*alert.ProductionAlert, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, alertID)
	}
	return nil, nil
}

func (m *mockAlertRepository) GetBySID(ctx context.Context, sid string) (*alert.ProductionAlert, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockAlertRepository) FindActive(ctx context.Context, machineID, configID uint) (*alert.ProductionAlert, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, machineID, configID)
	}
	return nil, nil
}

func (m *mockAlertRepository) ListActiveByMachine(ctx context.Context, machineID uint) ([]*alert.ProductionAlert, error) {
	if m.ListActiveByMachineFunc != nil {
		return m.ListActiveByMachineFunc(ctx, machineID)
	}
	return nil, nil
}

func (m *mockAlertRepository) ListActive(ctx context.Context) ([]*alert.ProductionAlert, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

type mockGateStateProvider struct {
	StatesForFunc func(ctx context.Context, machineID uint) ([]quality.ConfigState, error)
}

func (m *mockGateStateProvider) StatesFor(ctx context.Context, machineID uint) ([]quality.ConfigState, error) {
	if m.StatesForFunc != nil {
		return m.StatesForFunc(ctx, machineID)
	}
	return nil, nil
}

type mockDispatchLock struct {
	TryAcquireFunc func(ctx context.Context, machineID, configID uint, ttl time.Duration) (bool, error)
	ReleaseFunc    func(ctx context.Context, machineID, configID uint) error
}

func (m *mockDispatchLock) TryAcquire(ctx context.Context, machineID, configID uint, ttl time.Duration) (bool, error) {
	if m.TryAcquireFunc != nil {
		return m.TryAcquireFunc(ctx, machineID, configID, ttl)
	}
	return true, nil
}

func (m *mockDispatchLock) Release(ctx context.Context, machineID, configID uint) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, machineID, configID)
	}
	return nil
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

func (m *mockEventDispatcher) Subscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Unsubscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Start() error { return nil }
func (m *mockEventDispatcher) Stop() error  { return nil }

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
