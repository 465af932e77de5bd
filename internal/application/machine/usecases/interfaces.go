package usecases

import "context"

type RegisterMachineExecutor interface {
	Execute(ctx context.Context, cmd RegisterMachineCommand) (*MachineResult, error)
}

type GetMachineExecutor interface {
	Execute(ctx context.Context, query GetMachineQuery) (*MachineResult, error)
}

type ListMachinesExecutor interface {
	Execute(ctx context.Context, query ListMachinesQuery) (*ListMachinesResult, error)
}

type ChangeMachineStatusExecutor interface {
	Execute(ctx context.Context, cmd ChangeMachineStatusCommand) (*MachineResult, error)
}
