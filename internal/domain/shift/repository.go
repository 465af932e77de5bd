package shift

import (
	"context"
	"time"
)

// RecordRepository persists shift records. FindOpen only ever returns the
// single non-archived record for the key; the storage layer enforces that
// uniqueness with a constraint, not just an application check.
type RecordRepository interface {
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	FindOpen(ctx context.Context, machineID, operatorID uint) (*Record, error)
	ListOpenByMachine(ctx context.Context, machineID uint) ([]*Record, error)
	FindOverlapping(ctx context.Context, machineID uint, start, end time.Time) ([]*Record, error)
	ListOpenEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Record, error)
	ListByMachineAndDate(ctx context.Context, machineID uint, shiftDate time.Time) ([]*Record, error)
}

// DeltaRepository is the append-only production event log.
type DeltaRepository interface {
	Append(ctx context.Context, delta *Delta) error
	FindByEventID(ctx context.Context, eventID string) (*Delta, error)
	SumProducedSince(ctx context.Context, machineID uint, since time.Time) (int, error)
}
