package quality

import (
	"context"
	"time"
)

type GateConfigRepository interface {
	Create(ctx context.Context, cfg *GateConfig) error
	Update(ctx context.Context, cfg *GateConfig) error
	GetByID(ctx context.Context, configID uint) (*GateConfig, error)
	GetBySID(ctx context.Context, sid string) (*GateConfig, error)
	ListActiveByMachine(ctx context.Context, machineID uint) ([]*GateConfig, error)
}

type TestRecordRepository interface {
	Append(ctx context.Context, record *TestRecord) error
	FindLatest(ctx context.Context, machineID, configID uint) (*TestRecord, error)
	ListSince(ctx context.Context, machineID, configID uint, since time.Time) ([]*TestRecord, error)
}
