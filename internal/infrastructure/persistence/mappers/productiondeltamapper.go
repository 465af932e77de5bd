package mappers

import (
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
)

// ProductionDeltaMapper handles the conversion between production Delta
// domain values and persistence models.
type ProductionDeltaMapper interface {
	ToModel(d *shift.Delta) *models.ProductionDeltaModel
	ToDomain(model *models.ProductionDeltaModel) *shift.Delta
}

// ProductionDeltaMapperImpl is the concrete implementation of ProductionDeltaMapper.
type ProductionDeltaMapperImpl struct{}

// NewProductionDeltaMapper creates a new ProductionDeltaMapper.
func NewProductionDeltaMapper() ProductionDeltaMapper {
	return &ProductionDeltaMapperImpl{}
}

func (mp *ProductionDeltaMapperImpl) ToModel(d *shift.Delta) *models.ProductionDeltaModel {
	return &models.ProductionDeltaModel{
		ID:              d.ID,
		EventID:         d.EventID,
		MachineID:       d.MachineID,
		OperatorID:      d.OperatorID,
		ProducedUnits:   d.ProducedUnits,
		RuntimeMinutes:  d.RuntimeMinutes,
		DowntimeMinutes: d.DowntimeMinutes,
		RecordedAt:      timeToMillis(d.RecordedAt),
	}
}

func (mp *ProductionDeltaMapperImpl) ToDomain(model *models.ProductionDeltaModel) *shift.Delta {
	return &shift.Delta{
		ID:              model.ID,
		EventID:         model.EventID,
		MachineID:       model.MachineID,
		OperatorID:      model.OperatorID,
		ProducedUnits:   model.ProducedUnits,
		RuntimeMinutes:  model.RuntimeMinutes,
		DowntimeMinutes: model.DowntimeMinutes,
		RecordedAt:      millisToTime(model.RecordedAt),
	}
}
