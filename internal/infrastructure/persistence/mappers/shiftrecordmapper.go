package mappers

import (
	"fmt"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
)

// ShiftRecordMapper handles the conversion between shift Record domain
// entities and persistence models. The mapper owns the OpenKey lifecycle:
// open records carry the machine/operator key, archived records carry NULL
// so the unique index only constrains open rows.
type ShiftRecordMapper interface {
	ToModel(r *shift.Record) *models.ShiftRecordModel
	ToDomain(model *models.ShiftRecordModel) (*shift.Record, error)
}

// ShiftRecordMapperImpl is the concrete implementation of ShiftRecordMapper.
type ShiftRecordMapperImpl struct{}

// NewShiftRecordMapper creates a new ShiftRecordMapper.
func NewShiftRecordMapper() ShiftRecordMapper {
	return &ShiftRecordMapperImpl{}
}

func (mp *ShiftRecordMapperImpl) ToModel(r *shift.Record) *models.ShiftRecordModel {
	model := &models.ShiftRecordModel{
		ID:                 r.ID(),
		MachineID:          r.MachineID(),
		OperatorID:         r.OperatorID(),
		ShiftDate:          biztime.FormatDate(r.ShiftDate()),
		ShiftType:          r.ShiftType().String(),
		StartTime:          timeToMillis(r.StartTime()),
		EndTime:            timePtrToMillis(r.EndTime()),
		TotalProduction:    r.TotalProduction(),
		TargetProduction:   r.TargetProduction(),
		Efficiency:         r.Efficiency(),
		RuntimeMinutes:     r.RuntimeMinutes(),
		DowntimeMinutes:    r.DowntimeMinutes(),
		QualityTestsCount:  r.QualityTestsCount(),
		ApprovedTestsCount: r.ApprovedTestsCount(),
		HandoverNote:       r.HandoverNote(),
		IsArchived:         r.IsArchived(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}

	if !r.IsArchived() {
		key := models.OpenKeyFor(r.MachineID(), r.OperatorID())
		model.OpenKey = &key
	}

	return model
}

func (mp *ShiftRecordMapperImpl) ToDomain(model *models.ShiftRecordModel) (*shift.Record, error) {
	shiftType, err := vo.NewShiftType(model.ShiftType)
	if err != nil {
		return nil, fmt.Errorf("invalid shift type in storage (id=%d): %w", model.ID, err)
	}

	shiftDate, err := biztime.ParseDateInPlant(model.ShiftDate)
	if err != nil {
		return nil, fmt.Errorf("invalid shift date in storage (id=%d): %w", model.ID, err)
	}

	return shift.ReconstructRecord(
		model.ID,
		model.MachineID,
		model.OperatorID,
		shiftDate,
		shiftType,
		millisToTime(model.StartTime),
		millisPtrToTime(model.EndTime),
		model.TotalProduction,
		model.TargetProduction,
		model.Efficiency,
		model.RuntimeMinutes,
		model.DowntimeMinutes,
		model.QualityTestsCount,
		model.ApprovedTestsCount,
		model.HandoverNote,
		model.IsArchived,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
