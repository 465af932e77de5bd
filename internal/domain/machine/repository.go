package machine

import "context"

type Repository interface {
	Create(ctx context.Context, m *Machine) error
	GetByID(ctx context.Context, machineID uint) (*Machine, error)
	GetBySID(ctx context.Context, sid string) (*Machine, error)
	Update(ctx context.Context, m *Machine) error
	List(ctx context.Context, limit, offset int) ([]*Machine, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
}
