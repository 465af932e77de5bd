package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type ResolveShiftCommand struct {
	MachineSID string
	OperatorID uint
}

// ShiftRecordResult is the wire shape of a shift record, shared by the
// production use cases.
type ShiftRecordResult struct {
	RecordID           uint    `json:"record_id"`
	MachineSID         string  `json:"machine_sid"`
	OperatorID         uint    `json:"operator_id"`
	ShiftDate          string  `json:"shift_date"`
	ShiftType          string  `json:"shift_type"`
	StartTime          string  `json:"start_time"`
	EndTime            *string `json:"end_time,omitempty"`
	TotalProduction    int     `json:"total_production"`
	TargetProduction   int     `json:"target_production"`
	Efficiency         float64 `json:"efficiency"`
	RuntimeMinutes     int     `json:"runtime_minutes"`
	DowntimeMinutes    int     `json:"downtime_minutes"`
	QualityTestsCount  int     `json:"quality_tests_count"`
	ApprovedTestsCount int     `json:"approved_tests_count"`
	IsArchived         bool    `json:"is_archived"`
	Rolled             bool    `json:"rolled"`
}

type ResolveShiftUseCase struct {
	machineRepo machine.Repository
	sessions    ShiftSessionProvider
	logger      logger.Interface
}

func NewResolveShiftUseCase(
	machineRepo machine.Repository,
	sessions ShiftSessionProvider,
	logger logger.Interface,
) *ResolveShiftUseCase {
	return &ResolveShiftUseCase{
		machineRepo: machineRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

func (uc *ResolveShiftUseCase) Execute(ctx context.Context, cmd ResolveShiftCommand) (*ShiftRecordResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}
	if cmd.OperatorID == 0 {
		return nil, errors.NewValidationError("operator ID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	session, err := uc.sessions.EnsureOpenRecord(ctx, m, cmd.OperatorID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to resolve shift", "error", err,
			"machine_sid", cmd.MachineSID, "operator_id", cmd.OperatorID)
		return nil, err
	}

	return toShiftRecordResult(session.Record, cmd.MachineSID, session.Rolled), nil
}

func toShiftRecordResult(r *shift.Record, machineSID string, rolled bool) *ShiftRecordResult {
	result := &ShiftRecordResult{
		RecordID:           r.ID(),
		MachineSID:         machineSID,
		OperatorID:         r.OperatorID(),
		ShiftDate:          biztime.FormatDate(r.ShiftDate()),
		ShiftType:          r.ShiftType().String(),
		StartTime:          r.StartTime().UTC().Format("2006-01-02T15:04:05Z07:00"),
		TotalProduction:    r.TotalProduction(),
		TargetProduction:   r.TargetProduction(),
		Efficiency:         r.Efficiency(),
		RuntimeMinutes:     r.RuntimeMinutes(),
		DowntimeMinutes:    r.DowntimeMinutes(),
		QualityTestsCount:  r.QualityTestsCount(),
		ApprovedTestsCount: r.ApprovedTestsCount(),
		IsArchived:         r.IsArchived(),
		Rolled:             rolled,
	}
	if end := r.EndTime(); end != nil {
		s := end.UTC().Format("2006-01-02T15:04:05Z07:00")
		result.EndTime = &s
	}
	return result
}
