package valueobjects

import "fmt"

type MachineStatus string

const (
	MachineStatusStopped     MachineStatus = "stopped"
	MachineStatusRunning     MachineStatus = "running"
	MachineStatusMaintenance MachineStatus = "maintenance"
	MachineStatusError       MachineStatus = "error"
	MachineStatusOffShift    MachineStatus = "off_shift"
)

var validMachineStatuses = map[MachineStatus]bool{
	MachineStatusStopped:     true,
	MachineStatusRunning:     true,
	MachineStatusMaintenance: true,
	MachineStatusError:       true,
	MachineStatusOffShift:    true,
}

var machineStatusTransitions = map[MachineStatus][]MachineStatus{
	MachineStatusStopped: {
		MachineStatusRunning,
		MachineStatusMaintenance,
		MachineStatusOffShift,
	},
	MachineStatusRunning: {
		MachineStatusStopped,
		MachineStatusError,
		MachineStatusMaintenance,
		MachineStatusOffShift,
	},
	MachineStatusMaintenance: {
		MachineStatusStopped,
	},
	MachineStatusError: {
		MachineStatusStopped,
		MachineStatusMaintenance,
	},
	MachineStatusOffShift: {
		MachineStatusStopped,
		MachineStatusRunning,
	},
}

func (s MachineStatus) String() string {
	return string(s)
}

func (s MachineStatus) IsValid() bool {
	return validMachineStatuses[s]
}

func (s MachineStatus) IsRunning() bool {
	return s == MachineStatusRunning
}

func (s MachineStatus) IsOperational() bool {
	return s == MachineStatusRunning || s == MachineStatusStopped
}

func (s MachineStatus) CanTransitionTo(target MachineStatus) bool {
	allowed, exists := machineStatusTransitions[s]
	if !exists {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}

	return false
}

func NewMachineStatus(str string) (MachineStatus, error) {
	s := MachineStatus(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid machine status: %s", str)
	}
	return s, nil
}
