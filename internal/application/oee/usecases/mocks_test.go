package usecases

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
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

type mockRecordRepository struct {
	CreateFunc               func(ctx context.Context, record *shift.Record) error
	UpdateFunc               func(ctx context.Context, record *shift.Record) error
	FindOpenFunc             func(ctx context.Context, machineID, operatorID uint) (*shift.Record, error)
	ListOpenByMachineFunc    func(ctx context.Context, machineID uint) ([]*shift.Record, error)
	FindOverlappingFunc      func(ctx context.Context, machineID uint, start, end time.Time) ([]*shift.Record, error)
	ListOpenEndedBeforeFunc  func(ctx context.Context, cutoff time.Time, limit int) ([]*shift.Record, error)
	ListByMachineAndDateFunc func(ctx context.Context, machineID uint, shiftDate time.Time) ([]*shift.Record, error)
}

func (m *mockRecordRepository) Create(ctx context.Context, record *shift.Record) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *mockRecordRepository) Update(ctx context.Context, record *shift.Record) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, record)
	}
	return nil
}

func (m *mockRecordRepository) FindOpen(ctx context.Context, machineID, operatorID uint) (*shift.Record, error) {
	if m.FindOpenFunc != nil {
		return m.FindOpenFunc(ctx, machineID, operatorID)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListOpenByMachine(ctx context.Context, machineID uint) ([]*shift.Record, error) {
	if m.ListOpenByMachineFunc != nil {
		return m.ListOpenByMachineFunc(ctx, machineID)
	}
	return nil, nil
}

func (m *mockRecordRepository) FindOverlapping(ctx context.Context, machineID uint, start, end time.Time) ([]*shift.Record, error) {
	if m.FindOverlappingFunc != nil {
		return m.FindOverlappingFunc(ctx, machineID, start, end)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListOpenEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*shift.Record, error) {
	if m.ListOpenEndedBeforeFunc != nil {
		return m.ListOpenEndedBeforeFunc(ctx, cutoff, limit)
	}
	return nil, nil
}

func (m *mockRecordRepository) ListByMachineAndDate(ctx context.Context, machineID uint, shiftDate time.Time) ([]*shift.Record, error) {
	if m.ListByMachineAndDateFunc != nil {
		return m.ListByMachineAndDateFunc(ctx, machineID, shiftDate)
	}
	return nil, nil
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
