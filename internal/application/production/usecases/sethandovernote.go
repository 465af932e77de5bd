package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type SetHandoverNoteCommand struct {
	MachineSID string
	OperatorID uint
	Note       string
}

// MarkdownSanitizer strips unsafe HTML from operator-authored markdown
// before it is stored.
type MarkdownSanitizer interface {
	Sanitize(input string) string
}

// SetHandoverNoteUseCase attaches the outgoing operator's markdown note to
// the open shift record for the incoming shift to read.
type SetHandoverNoteUseCase struct {
	machineRepo machine.Repository
	recordRepo  shift.RecordRepository
	sanitizer   MarkdownSanitizer
	logger      logger.Interface
}

func NewSetHandoverNoteUseCase(
	machineRepo machine.Repository,
	recordRepo shift.RecordRepository,
	sanitizer MarkdownSanitizer,
	logger logger.Interface,
) *SetHandoverNoteUseCase {
	return &SetHandoverNoteUseCase{
		machineRepo: machineRepo,
		recordRepo:  recordRepo,
		sanitizer:   sanitizer,
		logger:      logger,
	}
}

func (uc *SetHandoverNoteUseCase) Execute(ctx context.Context, cmd SetHandoverNoteCommand) (*ShiftRecordResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}
	if cmd.OperatorID == 0 {
		return nil, errors.NewValidationError("operator ID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		return nil, errors.NewNotFoundError("machine not found")
	}

	open, err := uc.recordRepo.FindOpen(ctx, m.ID(), cmd.OperatorID)
	if err != nil {
		return nil, errors.NewNotFoundError("no open shift record")
	}

	if err := open.SetHandoverNote(uc.sanitizer.Sanitize(cmd.Note)); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.recordRepo.Update(ctx, open); err != nil {
		uc.logger.Errorw("failed to store handover note", "error", err, "record_id", open.ID())
		return nil, errors.NewInternalError("failed to store handover note")
	}

	return toShiftRecordResult(open, cmd.MachineSID, false), nil
}
