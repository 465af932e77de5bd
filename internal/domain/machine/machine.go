package machine

import (
	"fmt"
	"sync"
	"time"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/machine/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/id"
)

// Machine is the aggregate root for a production machine. Production speed
// is the ideal rate in units per hour; target production is the per-shift
// quota used for efficiency calculations.
type Machine struct {
	id               uint
	sid              string
	name             string
	status           vo.MachineStatus
	productionSpeed  float64
	targetProduction int
	teamCode         string
	createdAt        time.Time
	updatedAt        time.Time
	events           []interface{}
	mu               sync.RWMutex
}

func NewMachine(name string, productionSpeed float64, targetProduction int, teamCode string) (*Machine, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("machine name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("machine name exceeds maximum length of 100 characters")
	}
	if productionSpeed <= 0 {
		return nil, fmt.Errorf("production speed must be positive")
	}
	if targetProduction < 0 {
		return nil, fmt.Errorf("target production cannot be negative")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixMachine, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate machine SID: %w", err)
	}

	now := time.Now().UTC()
	m := &Machine{
		sid:              sid,
		name:             name,
		status:           vo.MachineStatusStopped,
		productionSpeed:  productionSpeed,
		targetProduction: targetProduction,
		teamCode:         teamCode,
		createdAt:        now,
		updatedAt:        now,
		events:           []interface{}{},
	}

	return m, nil
}

func ReconstructMachine(
	machineID uint,
	sid string,
	name string,
	status vo.MachineStatus,
	productionSpeed float64,
	targetProduction int,
	teamCode string,
	createdAt, updatedAt time.Time,
) (*Machine, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("machine SID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid machine status")
	}

	return &Machine{
		id:               machineID,
		sid:              sid,
		name:             name,
		status:           status,
		productionSpeed:  productionSpeed,
		targetProduction: targetProduction,
		teamCode:         teamCode,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		events:           []interface{}{},
	}, nil
}

func (m *Machine) ID() uint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

func (m *Machine) SID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sid
}

func (m *Machine) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

func (m *Machine) Status() vo.MachineStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Machine) ProductionSpeed() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.productionSpeed
}

func (m *Machine) TargetProduction() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.targetProduction
}

func (m *Machine) TeamCode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.teamCode
}

func (m *Machine) CreatedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createdAt
}

func (m *Machine) UpdatedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.updatedAt
}

func (m *Machine) SetID(machineID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != 0 {
		return fmt.Errorf("machine ID is already set")
	}
	if machineID == 0 {
		return fmt.Errorf("machine ID cannot be zero")
	}
	m.id = machineID
	return nil
}

// Start transitions the machine into production. The caller is responsible
// for checking quality-gate blocks before invoking this.
func (m *Machine) Start() error {
	return m.transitionTo(vo.MachineStatusRunning)
}

// Stop halts production.
func (m *Machine) Stop() error {
	return m.transitionTo(vo.MachineStatusStopped)
}

// EnterMaintenance takes the machine out of production for service.
func (m *Machine) EnterMaintenance() error {
	return m.transitionTo(vo.MachineStatusMaintenance)
}

// ReportError marks the machine as faulted.
func (m *Machine) ReportError() error {
	return m.transitionTo(vo.MachineStatusError)
}

// GoOffShift parks the machine outside scheduled shift hours.
func (m *Machine) GoOffShift() error {
	return m.transitionTo(vo.MachineStatusOffShift)
}

func (m *Machine) transitionTo(target vo.MachineStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == target {
		return nil
	}
	if !m.status.CanTransitionTo(target) {
		return fmt.Errorf("illegal machine status transition: %s -> %s", m.status, target)
	}

	previous := m.status
	m.status = target
	m.updatedAt = time.Now().UTC()

	m.recordEventUnsafe(NewStatusChangedEvent(m.id, m.sid, previous, target))

	return nil
}

// UpdateTargets changes the ideal speed and per-shift quota.
func (m *Machine) UpdateTargets(productionSpeed float64, targetProduction int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if productionSpeed <= 0 {
		return fmt.Errorf("production speed must be positive")
	}
	if targetProduction < 0 {
		return fmt.Errorf("target production cannot be negative")
	}

	m.productionSpeed = productionSpeed
	m.targetProduction = targetProduction
	m.updatedAt = time.Now().UTC()
	return nil
}

func (m *Machine) recordEventUnsafe(event interface{}) {
	m.events = append(m.events, event)
}

func (m *Machine) GetEvents() []interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]interface{}, len(m.events))
	copy(events, m.events)
	m.events = []interface{}{}
	return events
}
