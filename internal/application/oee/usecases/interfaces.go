package usecases

import "context"

type CalculateOEEExecutor interface {
	Execute(ctx context.Context, query CalculateOEEQuery) (*OEEResult, error)
}

type CalculateCurrentShiftOEEExecutor interface {
	Execute(ctx context.Context, query CalculateCurrentShiftOEEQuery) (*OEEResult, error)
}

type CalculateFleetOEEExecutor interface {
	Execute(ctx context.Context, query CalculateFleetOEEQuery) (*CalculateFleetOEEResult, error)
}
