package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/id"
)

// Target roles an alert fans out to. Unknown roles fall back to the base
// message.
const (
	RoleQualityManager = "quality_manager"
	RoleLineLead       = "line_lead"
	RoleOperator       = "operator"
)

// ProductionAlert is raised when a quality gate stays pending on a machine.
// At most one active alert exists per (machine, gate config) pair.
type ProductionAlert struct {
	id          uint
	sid         string
	machineID   uint
	configID    uint
	reasonCode  string
	testName    string
	measured    float64
	threshold   float64
	severity    valueobjects.Severity
	message     string
	targetRoles []string
	isActive    bool
	raisedAt    time.Time
	resolvedAt  *time.Time
	ackedBy     *uint
	ackedAt     *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	events      []interface{}
	mu          sync.RWMutex
}

func NewProductionAlert(
	machineID, configID uint,
	reasonCode, testName string,
	measured, threshold float64,
	severity valueobjects.Severity,
	message string,
	targetRoles []string,
) (*ProductionAlert, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine id is required")
	}
	if configID == 0 {
		return nil, fmt.Errorf("config id is required")
	}
	if message == "" {
		return nil, fmt.Errorf("alert message is required")
	}

	now := time.Now()
	a := &ProductionAlert{
		sid:         id.MustGenerateWithPrefix(id.PrefixAlert),
		machineID:   machineID,
		configID:    configID,
		reasonCode:  reasonCode,
		testName:    testName,
		measured:    measured,
		threshold:   threshold,
		severity:    severity,
		message:     message,
		targetRoles: targetRoles,
		isActive:    true,
		raisedAt:    now,
		createdAt:   now,
		updatedAt:   now,
		events:      []interface{}{},
	}
	a.recordEvent(NewAlertRaisedEvent(a.sid, machineID, configID, reasonCode, severity.String()))
	return a, nil
}

func ReconstructProductionAlert(
	alertID uint,
	sid string,
	machineID, configID uint,
	reasonCode, testName string,
	measured, threshold float64,
	severity valueobjects.Severity,
	message string,
	targetRoles []string,
	isActive bool,
	raisedAt time.Time,
	resolvedAt *time.Time,
	ackedBy *uint,
	ackedAt *time.Time,
	createdAt, updatedAt time.Time,
) *ProductionAlert {
	return &ProductionAlert{
		id:          alertID,
		sid:         sid,
		machineID:   machineID,
		configID:    configID,
		reasonCode:  reasonCode,
		testName:    testName,
		measured:    measured,
		threshold:   threshold,
		severity:    severity,
		message:     message,
		targetRoles: targetRoles,
		isActive:    isActive,
		raisedAt:    raisedAt,
		resolvedAt:  resolvedAt,
		ackedBy:     ackedBy,
		ackedAt:     ackedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		events:      []interface{}{},
	}
}

func (a *ProductionAlert) ID() uint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.id
}

func (a *ProductionAlert) SID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sid
}

func (a *ProductionAlert) MachineID() uint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.machineID
}

func (a *ProductionAlert) ConfigID() uint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.configID
}

func (a *ProductionAlert) ReasonCode() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reasonCode
}

func (a *ProductionAlert) TestName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.testName
}

func (a *ProductionAlert) Measured() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.measured
}

func (a *ProductionAlert) Threshold() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.threshold
}

func (a *ProductionAlert) Severity() valueobjects.Severity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.severity
}

func (a *ProductionAlert) Message() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.message
}

// MessageFor renders the alert message for one target role. A quality
// manager gets the measurements, a line lead the containment action, an
// operator the test to run.
func (a *ProductionAlert) MessageFor(role string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	switch role {
	case RoleQualityManager:
		return fmt.Sprintf("%s [severity %s, measured %.1f, threshold %.1f]",
			a.message, a.severity.String(), a.measured, a.threshold)
	case RoleLineLead:
		return fmt.Sprintf("Containment needed: %s. Hold output on the machine until the %q test passes.",
			a.message, a.testName)
	case RoleOperator:
		return fmt.Sprintf("Run the %q test now: %s.", a.testName, a.message)
	default:
		return a.message
	}
}

func (a *ProductionAlert) TargetRoles() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	roles := make([]string, len(a.targetRoles))
	copy(roles, a.targetRoles)
	return roles
}

func (a *ProductionAlert) IsActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isActive
}

func (a *ProductionAlert) RaisedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.raisedAt
}

func (a *ProductionAlert) ResolvedAt() *time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.resolvedAt
}

func (a *ProductionAlert) AckedBy() *uint {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ackedBy
}

func (a *ProductionAlert) AckedAt() *time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ackedAt
}

func (a *ProductionAlert) CreatedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.createdAt
}

func (a *ProductionAlert) UpdatedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.updatedAt
}

// Acknowledge marks the alert as seen by an operator. The alert stays
// active until the underlying gate condition clears.
func (a *ProductionAlert) Acknowledge(operatorID uint) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isActive {
		return fmt.Errorf("alert %s is not active", a.sid)
	}
	if a.ackedAt != nil {
		return fmt.Errorf("alert %s is already acknowledged", a.sid)
	}

	now := time.Now()
	a.ackedBy = &operatorID
	a.ackedAt = &now
	a.updatedAt = now
	return nil
}

// Resolve deactivates the alert once its gate condition no longer holds.
func (a *ProductionAlert) Resolve() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isActive {
		return fmt.Errorf("alert %s is already resolved", a.sid)
	}

	now := time.Now()
	a.isActive = false
	a.resolvedAt = &now
	a.updatedAt = now
	a.recordEventUnsafe(NewAlertResolvedEvent(a.sid, a.machineID, a.configID))
	return nil
}

// SetID assigns the database identity after persistence.
func (a *ProductionAlert) SetID(alertID uint) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.id = alertID
}

func (a *ProductionAlert) GetEvents() []interface{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	evts := make([]interface{}, len(a.events))
	copy(evts, a.events)
	a.events = []interface{}{}
	return evts
}

func (a *ProductionAlert) recordEvent(event interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recordEventUnsafe(event)
}

func (a *ProductionAlert) recordEventUnsafe(event interface{}) {
	a.events = append(a.events, event)
}
