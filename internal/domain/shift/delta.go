package shift

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Delta is one append-only production event. The event ID is the
// idempotency key: a retried request carrying the same ID collapses to the
// stored row and is never double-counted. The delta log also feeds the
// quality-gate count condition, which must survive shift rollovers where
// the per-record total resets.
type Delta struct {
	ID              uint
	EventID         string
	MachineID       uint
	OperatorID      uint
	ProducedUnits   int
	RuntimeMinutes  int
	DowntimeMinutes int
	RecordedAt      time.Time
}

// NewDelta validates and builds a production delta. A missing event ID gets
// a fresh UUID so direct (non-retried) callers stay simple.
func NewDelta(machineID, operatorID uint, producedUnits, runtimeMinutes, downtimeMinutes int, eventID string, recordedAt time.Time) (*Delta, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if operatorID == 0 {
		return nil, fmt.Errorf("operator ID is required")
	}
	if producedUnits < 0 {
		return nil, fmt.Errorf("produced units cannot be negative")
	}
	if runtimeMinutes < 0 || downtimeMinutes < 0 {
		return nil, fmt.Errorf("runtime and downtime cannot be negative")
	}

	if eventID == "" {
		eventID = uuid.NewString()
	} else if _, err := uuid.Parse(eventID); err != nil {
		return nil, fmt.Errorf("invalid delta event ID %q: %w", eventID, err)
	}

	return &Delta{
		EventID:         eventID,
		MachineID:       machineID,
		OperatorID:      operatorID,
		ProducedUnits:   producedUnits,
		RuntimeMinutes:  runtimeMinutes,
		DowntimeMinutes: downtimeMinutes,
		RecordedAt:      recordedAt,
	}, nil
}
