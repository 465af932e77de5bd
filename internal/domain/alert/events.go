package alert

import "github.com/shopfloor-io/shopfloor/internal/domain/shared/events"

const (
	EventTypeAlertRaised   = "alert.raised"
	EventTypeAlertResolved = "alert.resolved"
)

// AlertRaisedEvent is published when a quality-gate alert becomes active.
type AlertRaisedEvent struct {
	events.BaseEvent
	AlertSID   string `json:"alert_sid"`
	MachineID  uint   `json:"machine_id"`
	ConfigID   uint   `json:"config_id"`
	ReasonCode string `json:"reason_code"`
	Severity   string `json:"severity"`
}

func NewAlertRaisedEvent(alertSID string, machineID, configID uint, reasonCode, severity string) *AlertRaisedEvent {
	return &AlertRaisedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeAlertRaised, alertSID),
		AlertSID:   alertSID,
		MachineID:  machineID,
		ConfigID:   configID,
		ReasonCode: reasonCode,
		Severity:   severity,
	}
}

// AlertResolvedEvent is published when an active alert's condition clears.
type AlertResolvedEvent struct {
	events.BaseEvent
	AlertSID  string `json:"alert_sid"`
	MachineID uint   `json:"machine_id"`
	ConfigID  uint   `json:"config_id"`
}

func NewAlertResolvedEvent(alertSID string, machineID, configID uint) *AlertResolvedEvent {
	return &AlertResolvedEvent{
		BaseEvent: events.NewBaseEvent(EventTypeAlertResolved, alertSID),
		AlertSID:  alertSID,
		MachineID: machineID,
		ConfigID:  configID,
	}
}
