// Package services holds the shift-session logic shared by the production
// use cases.
package services

import (
	"context"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// ShiftSessionService materializes the resolver's decision: it owns the
// create/rollover critical section for one (machine, operator) pair. The
// read-check-write runs inside a transaction, and the storage layer's
// unique constraint on open records is the backstop: when two concurrent
// transitions race, the loser gets a conflict and re-reads the winner's
// record instead of creating a second one.
type ShiftSessionService struct {
	recordRepo shift.RecordRepository
	resolver   *shift.Resolver
	txMgr      *db.TransactionManager
	logger     logger.Interface
}

func NewShiftSessionService(
	recordRepo shift.RecordRepository,
	resolver *shift.Resolver,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *ShiftSessionService {
	return &ShiftSessionService{
		recordRepo: recordRepo,
		resolver:   resolver,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// Session is the outcome of resolving the active shift.
type Session struct {
	Record   *shift.Record
	Rolled   bool
	Archived *shift.Record
}

// Resolver exposes the underlying resolver for read-only shift math.
func (s *ShiftSessionService) Resolver() *shift.Resolver {
	return s.resolver
}

// EnsureOpenRecord returns the shift record production at now should be
// attributed to, creating or rolling over as the resolver decides.
func (s *ShiftSessionService) EnsureOpenRecord(ctx context.Context, m *machine.Machine, operatorID uint, now time.Time) (*Session, error) {
	var session *Session

	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		open, err := s.recordRepo.FindOpen(txCtx, m.ID(), operatorID)
		if err != nil && !errors.IsNotFoundError(err) {
			return err
		}

		switch s.resolver.Resolve(open, now) {
		case shift.DecisionKeepCurrent:
			session = &Session{Record: open}
			return nil

		case shift.DecisionCreateNew:
			fresh, err := s.openRecord(txCtx, m, operatorID, now)
			if err != nil {
				return err
			}
			session = &Session{Record: fresh}
			return nil

		case shift.DecisionRollover:
			if err := open.Archive(now); err != nil {
				return err
			}
			if err := s.recordRepo.Update(txCtx, open); err != nil {
				return err
			}
			fresh, err := s.openRecord(txCtx, m, operatorID, now)
			if err != nil {
				return err
			}
			s.logger.Infow("shift rolled over",
				"machine_id", m.ID(),
				"operator_id", operatorID,
				"from_record_id", open.ID(),
				"from_type", open.ShiftType().String(),
				"to_type", fresh.ShiftType().String())
			session = &Session{Record: fresh, Rolled: true, Archived: open}
			return nil
		}

		return errors.NewInternalError("unhandled shift resolution decision")
	})
	if err != nil {
		// A concurrent transition already opened the record; use it.
		if errors.IsConflictError(err) || errors.IsDuplicateError(err) {
			open, findErr := s.recordRepo.FindOpen(ctx, m.ID(), operatorID)
			if findErr == nil && open != nil {
				return &Session{Record: open}, nil
			}
		}
		return nil, err
	}

	return session, nil
}

func (s *ShiftSessionService) openRecord(ctx context.Context, m *machine.Machine, operatorID uint, now time.Time) (*shift.Record, error) {
	record, err := shift.NewRecord(
		m.ID(),
		operatorID,
		s.resolver.ShiftDate(now),
		s.resolver.DetermineShiftType(now),
		now,
		m.TargetProduction(),
	)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
