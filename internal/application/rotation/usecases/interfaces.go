package usecases

import "context"

type GetTeamShiftExecutor interface {
	Execute(ctx context.Context, query GetTeamShiftQuery) (*GetTeamShiftResult, error)
}

type GetRotationScheduleExecutor interface {
	Execute(ctx context.Context, query GetRotationScheduleQuery) (*GetRotationScheduleResult, error)
}
