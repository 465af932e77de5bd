package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type GetRotationScheduleQuery struct {
	TeamCode string
	// From in plant-calendar YYYY-MM-DD form; empty means today.
	From string
	Days int
}

type ScheduleEntryResult struct {
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Working bool   `json:"working"`
}

type GetRotationScheduleResult struct {
	TeamCode string                `json:"team_code"`
	Entries  []ScheduleEntryResult `json:"entries"`
}

const maxScheduleDays = 366

type GetRotationScheduleUseCase struct {
	schedule *shift.RotationSchedule
	logger   logger.Interface
}

func NewGetRotationScheduleUseCase(schedule *shift.RotationSchedule, logger logger.Interface) *GetRotationScheduleUseCase {
	return &GetRotationScheduleUseCase{
		schedule: schedule,
		logger:   logger,
	}
}

func (uc *GetRotationScheduleUseCase) Execute(ctx context.Context, query GetRotationScheduleQuery) (*GetRotationScheduleResult, error) {
	if query.TeamCode == "" {
		return nil, errors.NewValidationError("team code is required")
	}
	if query.Days <= 0 {
		return nil, errors.NewValidationError("days must be positive")
	}
	if query.Days > maxScheduleDays {
		return nil, errors.NewValidationError("schedule horizon too large")
	}

	from := biztime.NowUTC()
	if query.From != "" {
		parsed, err := biztime.ParseDateInPlant(query.From)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		from = parsed
	}

	entries, err := uc.schedule.Schedule(query.TeamCode, from, query.Days)
	if err != nil {
		return nil, errors.NewNotFoundError(err.Error())
	}

	result := &GetRotationScheduleResult{
		TeamCode: query.TeamCode,
		Entries:  make([]ScheduleEntryResult, 0, len(entries)),
	}
	for _, entry := range entries {
		result.Entries = append(result.Entries, ScheduleEntryResult{
			Date:    biztime.FormatDate(entry.Date),
			Slot:    entry.Slot.String(),
			Working: entry.Slot.IsWorking(),
		})
	}

	return result, nil
}
