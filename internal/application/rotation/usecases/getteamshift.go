package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type GetTeamShiftQuery struct {
	TeamCode string
	// Date in plant-calendar YYYY-MM-DD form; empty means today.
	Date string
}

type GetTeamShiftResult struct {
	TeamCode  string `json:"team_code"`
	Date      string `json:"date"`
	Slot      string `json:"slot"`
	Working   bool   `json:"working"`
	ShiftType string `json:"shift_type,omitempty"`
}

type GetTeamShiftUseCase struct {
	schedule *shift.RotationSchedule
	logger   logger.Interface
}

func NewGetTeamShiftUseCase(schedule *shift.RotationSchedule, logger logger.Interface) *GetTeamShiftUseCase {
	return &GetTeamShiftUseCase{
		schedule: schedule,
		logger:   logger,
	}
}

func (uc *GetTeamShiftUseCase) Execute(ctx context.Context, query GetTeamShiftQuery) (*GetTeamShiftResult, error) {
	if query.TeamCode == "" {
		return nil, errors.NewValidationError("team code is required")
	}

	date := biztime.NowUTC()
	if query.Date != "" {
		parsed, err := biztime.ParseDateInPlant(query.Date)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		date = parsed
	}

	slot, err := uc.schedule.SlotFor(query.TeamCode, date)
	if err != nil {
		return nil, errors.NewNotFoundError(err.Error())
	}

	result := &GetTeamShiftResult{
		TeamCode: query.TeamCode,
		Date:     biztime.FormatDate(date),
		Slot:     slot.String(),
		Working:  slot.IsWorking(),
	}
	if shiftType, ok := slot.ShiftType(); ok {
		result.ShiftType = shiftType.String()
	}

	return result, nil
}
