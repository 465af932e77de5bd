package mappers

import (
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
)

// TestRecordMapper handles the conversion between quality TestRecord
// domain values and persistence models.
type TestRecordMapper interface {
	ToModel(rec *quality.TestRecord) *models.QualityTestRecordModel
	ToDomain(model *models.QualityTestRecordModel) *quality.TestRecord
}

// TestRecordMapperImpl is the concrete implementation of TestRecordMapper.
type TestRecordMapperImpl struct{}

// NewTestRecordMapper creates a new TestRecordMapper.
func NewTestRecordMapper() TestRecordMapper {
	return &TestRecordMapperImpl{}
}

func (mp *TestRecordMapperImpl) ToModel(rec *quality.TestRecord) *models.QualityTestRecordModel {
	return &models.QualityTestRecordModel{
		ID:         rec.ID,
		MachineID:  rec.MachineID,
		ConfigID:   rec.ConfigID,
		OperatorID: rec.OperatorID,
		TestDate:   timeToMillis(rec.TestDate),
		Approved:   rec.Approved,
		Notes:      rec.Notes,
	}
}

func (mp *TestRecordMapperImpl) ToDomain(model *models.QualityTestRecordModel) *quality.TestRecord {
	return &quality.TestRecord{
		ID:         model.ID,
		MachineID:  model.MachineID,
		ConfigID:   model.ConfigID,
		OperatorID: model.OperatorID,
		TestDate:   millisToTime(model.TestDate),
		Approved:   model.Approved,
		Notes:      model.Notes,
	}
}
