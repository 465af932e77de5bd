// Package dispatch reacts to production activity by running the alert
// dispatch sweep for the machine that just reported.
package dispatch

import (
	"context"
	"time"

	alertingUC "github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// Trigger evaluates a machine's quality gates as soon as a production delta
// lands, so an alert follows the breaching delta instead of waiting for the
// periodic sweep. It consumes ProductionRecordedEvent off the dispatcher;
// the sweep job remains the backstop for machines that stop reporting.
type Trigger struct {
	machineRepo machine.Repository
	dispatchUC  alertingUC.DispatchAlertsExecutor
	logger      logger.Interface
}

func NewTrigger(machineRepo machine.Repository, dispatchUC alertingUC.DispatchAlertsExecutor, log logger.Interface) *Trigger {
	return &Trigger{
		machineRepo: machineRepo,
		dispatchUC:  dispatchUC,
		logger:      log,
	}
}

// Subscribe registers the trigger on the event dispatcher.
func (t *Trigger) Subscribe(dispatcher events.EventDispatcher) error {
	handler := events.NewSimpleEventHandler(shift.EventTypeProductionRecorded, t.handleProductionRecorded)
	return dispatcher.Subscribe(shift.EventTypeProductionRecorded, handler)
}

func (t *Trigger) handleProductionRecorded(event events.DomainEvent) error {
	recorded, ok := event.(*shift.ProductionRecordedEvent)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := t.machineRepo.GetByID(ctx, recorded.MachineID)
	if err != nil {
		t.logger.Errorw("failed to load machine for gate evaluation",
			"error", err,
			"machine_id", recorded.MachineID,
		)
		return nil
	}

	result, err := t.dispatchUC.Execute(ctx, alertingUC.DispatchAlertsCommand{MachineSID: m.SID()})
	if err != nil {
		t.logger.Errorw("gate evaluation after production delta failed",
			"error", err,
			"machine_sid", m.SID(),
		)
		return nil
	}

	if len(result.Raised) > 0 {
		t.logger.Infow("alerts raised from production delta",
			"machine_sid", m.SID(),
			"raised", len(result.Raised),
		)
	}
	return nil
}
