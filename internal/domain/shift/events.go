package shift

import (
	"fmt"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
)

const (
	EventTypeShiftRolled        = "shift.rolled"
	EventTypeShiftArchived      = "shift.archived"
	EventTypeProductionRecorded = "shift.production_recorded"
)

// RolledEvent is published when an elapsed shift record is archived and a
// fresh one opened in its place.
type RolledEvent struct {
	events.BaseEvent
	MachineID     uint      `json:"machine_id"`
	OperatorID    uint      `json:"operator_id"`
	FromRecordID  uint      `json:"from_record_id"`
	FromShiftType string    `json:"from_shift_type"`
	ToShiftType   string    `json:"to_shift_type"`
	RolledAt      time.Time `json:"rolled_at"`
}

func NewRolledEvent(machineID, operatorID, fromRecordID uint, from, to vo.ShiftType, rolledAt time.Time) *RolledEvent {
	return &RolledEvent{
		BaseEvent:     events.NewBaseEvent(EventTypeShiftRolled, fmt.Sprintf("%d", machineID)),
		MachineID:     machineID,
		OperatorID:    operatorID,
		FromRecordID:  fromRecordID,
		FromShiftType: from.String(),
		ToShiftType:   to.String(),
		RolledAt:      rolledAt,
	}
}

// ArchivedEvent is published when a shift record is closed.
type ArchivedEvent struct {
	events.BaseEvent
	RecordID   uint      `json:"record_id"`
	MachineID  uint      `json:"machine_id"`
	OperatorID uint      `json:"operator_id"`
	ShiftType  string    `json:"shift_type"`
	ArchivedAt time.Time `json:"archived_at"`
}

func NewArchivedEvent(recordID, machineID, operatorID uint, shiftType vo.ShiftType, archivedAt time.Time) *ArchivedEvent {
	return &ArchivedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeShiftArchived, fmt.Sprintf("%d", recordID)),
		RecordID:   recordID,
		MachineID:  machineID,
		OperatorID: operatorID,
		ShiftType:  shiftType.String(),
		ArchivedAt: archivedAt,
	}
}

// ProductionRecordedEvent is published when a production delta is applied
// to an open shift record.
type ProductionRecordedEvent struct {
	events.BaseEvent
	MachineID     uint      `json:"machine_id"`
	OperatorID    uint      `json:"operator_id"`
	RecordID      uint      `json:"record_id"`
	ProducedUnits int       `json:"produced_units"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func NewProductionRecordedEvent(machineID, operatorID, recordID uint, producedUnits int, recordedAt time.Time) *ProductionRecordedEvent {
	return &ProductionRecordedEvent{
		BaseEvent:     events.NewBaseEvent(EventTypeProductionRecorded, fmt.Sprintf("%d", recordID)),
		MachineID:     machineID,
		OperatorID:    operatorID,
		RecordID:      recordID,
		ProducedUnits: producedUnits,
		RecordedAt:    recordedAt,
	}
}
