package machine

import (
	vo "github.com/shopfloor-io/shopfloor/internal/domain/machine/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
)

const EventTypeStatusChanged = "machine.status_changed"

// StatusChangedEvent is published when a machine transitions between states.
type StatusChangedEvent struct {
	events.BaseEvent
	MachineID  uint   `json:"machine_id"`
	MachineSID string `json:"machine_sid"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func NewStatusChangedEvent(machineID uint, machineSID string, from, to vo.MachineStatus) *StatusChangedEvent {
	return &StatusChangedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeStatusChanged, machineSID),
		MachineID:  machineID,
		MachineSID: machineSID,
		From:       from.String(),
		To:         to.String(),
	}
}
