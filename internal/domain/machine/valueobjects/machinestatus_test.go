package valueobjects

import (
	"testing"
)

func TestNewMachineStatus_Valid(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected MachineStatus
	}{
		{"stopped status", "stopped", MachineStatusStopped},
		{"running status", "running", MachineStatusRunning},
		{"maintenance status", "maintenance", MachineStatusMaintenance},
		{"error status", "error", MachineStatusError},
		{"off shift status", "off_shift", MachineStatusOffShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := NewMachineStatus(tt.status)
			if err != nil {
				t.Errorf("NewMachineStatus(%q) error = %v, want nil", tt.status, err)
				return
			}
			if status != tt.expected {
				t.Errorf("NewMachineStatus(%q) = %v, want %v", tt.status, status, tt.expected)
			}
		})
	}
}

func TestNewMachineStatus_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		status string
	}{
		{"invalid status", "invalid"},
		{"empty status", ""},
		{"uppercase", "RUNNING"},
		{"mixed case", "Running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMachineStatus(tt.status)
			if err == nil {
				t.Errorf("NewMachineStatus(%q) error = nil, want error", tt.status)
			}
		})
	}
}

func TestMachineStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     MachineStatus
		to       MachineStatus
		expected bool
	}{
		{"stopped to running", MachineStatusStopped, MachineStatusRunning, true},
		{"stopped to maintenance", MachineStatusStopped, MachineStatusMaintenance, true},
		{"stopped to error", MachineStatusStopped, MachineStatusError, false},
		{"running to stopped", MachineStatusRunning, MachineStatusStopped, true},
		{"running to error", MachineStatusRunning, MachineStatusError, true},
		{"maintenance to running", MachineStatusMaintenance, MachineStatusRunning, false},
		{"maintenance to stopped", MachineStatusMaintenance, MachineStatusStopped, true},
		{"error to maintenance", MachineStatusError, MachineStatusMaintenance, true},
		{"error to running", MachineStatusError, MachineStatusRunning, false},
		{"off shift to running", MachineStatusOffShift, MachineStatusRunning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.from.CanTransitionTo(tt.to)
			if result != tt.expected {
				t.Errorf("CanTransitionTo(%v -> %v) = %v, want %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestMachineStatus_IsOperational(t *testing.T) {
	tests := []struct {
		name     string
		status   MachineStatus
		expected bool
	}{
		{"running is operational", MachineStatusRunning, true},
		{"stopped is operational", MachineStatusStopped, true},
		{"maintenance is not", MachineStatusMaintenance, false},
		{"error is not", MachineStatusError, false},
		{"off shift is not", MachineStatusOffShift, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsOperational(); got != tt.expected {
				t.Errorf("IsOperational() = %v, want %v", got, tt.expected)
			}
		})
	}
}
