package alert

import "context"

type Repository interface {
	// CreateIfNoneActive inserts the alert unless an active alert already
	// exists for the same machine and gate config. Returns a conflict error
	// when the insert loses the race.
	CreateIfNoneActive(ctx context.Context, a *ProductionAlert) error
	Update(ctx context.Context, a *ProductionAlert) error
	GetByID(ctx context.Context, alertID uint) (*ProductionAlert, error)
	GetBySID(ctx context.Context, sid string) (*ProductionAlert, error)
	FindActive(ctx context.Context, machineID, configID uint) (*ProductionAlert, error)
	ListActiveByMachine(ctx context.Context, machineID uint) ([]*ProductionAlert, error)
	ListActive(ctx context.Context) ([]*ProductionAlert, error)
}
