package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/alert/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type DispatchAlertsCommand struct {
	MachineSID string
}

type DispatchedAlertResult struct {
	AlertSID string  `json:"alert_sid"`
	TestName string  `json:"test_name"`
	Code     string  `json:"code"`
	Severity string  `json:"severity"`
	ExceedBy float64 `json:"exceed_by"`
}

type DispatchAlertsResult struct {
	MachineSID string                  `json:"machine_sid"`
	Raised     []DispatchedAlertResult `json:"raised"`
	Skipped    int                     `json:"skipped"`
}

// DispatchAlertsUseCase raises one deduplicated ProductionAlert per gate
// config that is pending and not already alerted. Two consecutive sweeps
// over the same unresolved breach yield exactly one active alert: the redis
// lock short-circuits concurrent sweeps and the storage constraint on
// active alerts catches whatever slips through.
type DispatchAlertsUseCase struct {
	machineRepo     machine.Repository
	alertRepo       alert.Repository
	states          GateStateProvider
	lock            DispatchLock
	lockTTL         time.Duration
	targetRoles     []string
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewDispatchAlertsUseCase(
	machineRepo machine.Repository,
	alertRepo alert.Repository,
	states GateStateProvider,
	lock DispatchLock,
	lockTTL time.Duration,
	targetRoles []string,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *DispatchAlertsUseCase {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}
	if len(targetRoles) == 0 {
		targetRoles = []string{alert.RoleQualityManager}
	}
	return &DispatchAlertsUseCase{
		machineRepo:     machineRepo,
		alertRepo:       alertRepo,
		states:          states,
		lock:            lock,
		lockTTL:         lockTTL,
		targetRoles:     targetRoles,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *DispatchAlertsUseCase) Execute(ctx context.Context, cmd DispatchAlertsCommand) (*DispatchAlertsResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	states, err := uc.states.StatesFor(ctx, m.ID())
	if err != nil {
		uc.logger.Errorw("failed to load gate states", "error", err, "machine_id", m.ID())
		return nil, errors.NewInternalError("failed to load gate states")
	}

	status := quality.Evaluate(states, biztime.NowUTC())
	result := &DispatchAlertsResult{MachineSID: cmd.MachineSID, Raised: []DispatchedAlertResult{}}
	if status.IsOK() {
		return result, nil
	}

	for _, reason := range primaryReasonPerConfig(status.Reasons) {
		raised, err := uc.raiseOne(ctx, m, reason)
		if err != nil {
			uc.logger.Warnw("failed to raise alert",
				"machine_sid", cmd.MachineSID,
				"config_sid", reason.ConfigSID,
				"error", err)
			result.Skipped++
			continue
		}
		if raised == nil {
			result.Skipped++
			continue
		}
		result.Raised = append(result.Raised, *raised)
	}

	return result, nil
}

// primaryReasonPerConfig collapses multiple breached conditions on one
// config to a single alert candidate, preferring the larger overshoot.
func primaryReasonPerConfig(reasons []quality.Reason) []quality.Reason {
	byConfig := make(map[uint]quality.Reason)
	order := make([]uint, 0, len(reasons))
	for _, r := range reasons {
		existing, seen := byConfig[r.ConfigID]
		if !seen {
			order = append(order, r.ConfigID)
			byConfig[r.ConfigID] = r
			continue
		}
		if r.ExceedBy > existing.ExceedBy {
			byConfig[r.ConfigID] = r
		}
	}

	primary := make([]quality.Reason, 0, len(order))
	for _, configID := range order {
		primary = append(primary, byConfig[configID])
	}
	return primary
}

func (uc *DispatchAlertsUseCase) raiseOne(ctx context.Context, m *machine.Machine, reason quality.Reason) (*DispatchedAlertResult, error) {
	acquired, err := uc.lock.TryAcquire(ctx, m.ID(), reason.ConfigID, uc.lockTTL)
	if err != nil {
		// Lock failures degrade to the storage constraint, never block dispatch.
		uc.logger.Warnw("dispatch lock unavailable", "error", err,
			"machine_id", m.ID(), "config_id", reason.ConfigID)
	} else if !acquired {
		return nil, nil
	}
	if acquired {
		// The lock guards the in-flight check-then-create only; the TTL is
		// the crash backstop. Holding it longer would mute a fresh breach
		// raised right after the previous alert resolves.
		defer func() {
			if err := uc.lock.Release(ctx, m.ID(), reason.ConfigID); err != nil {
				uc.logger.Warnw("failed to release dispatch lock", "error", err,
					"machine_id", m.ID(), "config_id", reason.ConfigID)
			}
		}()
	}

	existing, err := uc.alertRepo.FindActive(ctx, m.ID(), reason.ConfigID)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	severity := valueobjects.SeverityMedium()
	if reason.ExceedBy > 0 {
		severity = valueobjects.SeverityHigh()
	}

	message := fmt.Sprintf("machine %s: quality gate %q pending (%s measured %.1f, threshold %.1f)",
		m.SID(), reason.TestName, reason.Code, reason.Measured, reason.Threshold)

	a, err := alert.NewProductionAlert(
		m.ID(),
		reason.ConfigID,
		string(reason.Code),
		reason.TestName,
		reason.Measured,
		reason.Threshold,
		severity,
		message,
		uc.targetRoles,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.alertRepo.CreateIfNoneActive(ctx, a); err != nil {
		if errors.IsConflictError(err) || errors.IsDuplicateError(err) {
			// Another sweep won the race; exactly one active alert remains.
			return nil, nil
		}
		return nil, err
	}

	for _, event := range a.GetEvents() {
		if domainEvent, ok := event.(events.DomainEvent); ok {
			if err := uc.eventDispatcher.Publish(domainEvent); err != nil {
				uc.logger.Warnw("failed to dispatch alert event", "error", err)
			}
		}
	}

	uc.logger.Infow("production alert raised",
		"alert_sid", a.SID(),
		"machine_sid", m.SID(),
		"test_name", reason.TestName,
		"severity", severity.String())

	return &DispatchedAlertResult{
		AlertSID: a.SID(),
		TestName: reason.TestName,
		Code:     string(reason.Code),
		Severity: severity.String(),
		ExceedBy: reason.ExceedBy,
	}, nil
}
