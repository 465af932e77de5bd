package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type RecordProductionDeltaCommand struct {
	MachineSID      string
	OperatorID      uint
	EventID         string
	ProducedUnits   int
	RuntimeMinutes  int
	DowntimeMinutes int
}

// RecordProductionDeltaUseCase merges one incremental production delta into
// the active shift record. The delta's event ID is the idempotency key: a
// retried request finds the stored delta and returns the current record
// without double-counting.
type RecordProductionDeltaUseCase struct {
	machineRepo     machine.Repository
	recordRepo      shift.RecordRepository
	deltaRepo       shift.DeltaRepository
	sessions        ShiftSessionProvider
	txMgr           TransactionRunner
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewRecordProductionDeltaUseCase(
	machineRepo machine.Repository,
	recordRepo shift.RecordRepository,
	deltaRepo shift.DeltaRepository,
	sessions ShiftSessionProvider,
	txMgr TransactionRunner,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *RecordProductionDeltaUseCase {
	return &RecordProductionDeltaUseCase{
		machineRepo:     machineRepo,
		recordRepo:      recordRepo,
		deltaRepo:       deltaRepo,
		sessions:        sessions,
		txMgr:           txMgr,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *RecordProductionDeltaUseCase) Execute(ctx context.Context, cmd RecordProductionDeltaCommand) (*ShiftRecordResult, error) {
	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	now := biztime.NowUTC()
	delta, err := shift.NewDelta(m.ID(), cmd.OperatorID, cmd.ProducedUnits, cmd.RuntimeMinutes, cmd.DowntimeMinutes, cmd.EventID, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if cmd.EventID != "" {
		applied, err := uc.deltaRepo.FindByEventID(ctx, delta.EventID)
		if err != nil && !errors.IsNotFoundError(err) {
			return nil, errors.NewInternalError("failed to check delta idempotency")
		}
		if applied != nil {
			uc.logger.Infow("delta already applied, returning current record",
				"event_id", delta.EventID, "machine_sid", cmd.MachineSID)
			return uc.currentRecord(ctx, m, cmd)
		}
	}

	session, err := uc.sessions.EnsureOpenRecord(ctx, m, cmd.OperatorID, now)
	if err != nil {
		uc.logger.Errorw("failed to resolve active shift", "error", err,
			"machine_sid", cmd.MachineSID, "operator_id", cmd.OperatorID)
		return nil, err
	}
	record := session.Record

	// The delta row and the record it merges into commit together. If the
	// merge fails the append rolls back too, so a retry of the same event ID
	// does not hit the idempotency check against a record it never updated.
	var suppressed bool
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.deltaRepo.Append(txCtx, delta); err != nil {
			// The unique event ID caught a concurrent retry of the same delta.
			if errors.IsDuplicateError(err) || errors.IsConflictError(err) {
				suppressed = true
				return err
			}
			uc.logger.Errorw("failed to append production delta", "error", err)
			return errors.NewTransientError("failed to persist production delta")
		}

		if err := record.ApplyDelta(cmd.ProducedUnits, cmd.RuntimeMinutes, cmd.DowntimeMinutes); err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.recordRepo.Update(txCtx, record); err != nil {
			uc.logger.Errorw("failed to update shift record after delta", "error", err,
				"record_id", record.ID(), "event_id", delta.EventID)
			return errors.NewTransientError("failed to update shift record")
		}
		return nil
	})
	if err != nil {
		if suppressed {
			uc.logger.Infow("concurrent duplicate delta suppressed", "event_id", delta.EventID)
			return toShiftRecordResult(record, cmd.MachineSID, session.Rolled), nil
		}
		return nil, err
	}

	uc.publishEvents(record, session.Archived)

	uc.logger.Infow("production delta recorded",
		"machine_sid", cmd.MachineSID,
		"operator_id", cmd.OperatorID,
		"units", cmd.ProducedUnits,
		"record_id", record.ID())

	return toShiftRecordResult(record, cmd.MachineSID, session.Rolled), nil
}

func (uc *RecordProductionDeltaUseCase) currentRecord(ctx context.Context, m *machine.Machine, cmd RecordProductionDeltaCommand) (*ShiftRecordResult, error) {
	open, err := uc.recordRepo.FindOpen(ctx, m.ID(), cmd.OperatorID)
	if err != nil {
		return nil, errors.NewNotFoundError("no open shift record")
	}
	return toShiftRecordResult(open, cmd.MachineSID, false), nil
}

func (uc *RecordProductionDeltaUseCase) publishEvents(records ...*shift.Record) {
	for _, r := range records {
		if r == nil {
			continue
		}
		for _, event := range r.GetEvents() {
			if domainEvent, ok := event.(events.DomainEvent); ok {
				if err := uc.eventDispatcher.Publish(domainEvent); err != nil {
					uc.logger.Warnw("failed to dispatch event", "error", err)
				}
			}
		}
	}
}

func (uc *RecordProductionDeltaUseCase) validateCommand(cmd RecordProductionDeltaCommand) error {
	if cmd.MachineSID == "" {
		return errors.NewValidationError("machine SID is required")
	}
	if cmd.OperatorID == 0 {
		return errors.NewValidationError("operator ID is required")
	}
	if cmd.ProducedUnits < 0 {
		return errors.NewValidationError("produced units cannot be negative")
	}
	if cmd.RuntimeMinutes < 0 || cmd.DowntimeMinutes < 0 {
		return errors.NewValidationError("runtime and downtime cannot be negative")
	}
	return nil
}
