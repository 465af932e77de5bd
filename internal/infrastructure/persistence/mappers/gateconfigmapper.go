package mappers

import (
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
)

// GateConfigMapper handles the conversion between GateConfig domain
// entities and persistence models.
type GateConfigMapper interface {
	ToModel(cfg *quality.GateConfig) *models.QualityGateConfigModel
	ToDomain(model *models.QualityGateConfigModel) (*quality.GateConfig, error)
}

// GateConfigMapperImpl is the concrete implementation of GateConfigMapper.
type GateConfigMapperImpl struct{}

// NewGateConfigMapper creates a new GateConfigMapper.
func NewGateConfigMapper() GateConfigMapper {
	return &GateConfigMapperImpl{}
}

func (mp *GateConfigMapperImpl) ToModel(cfg *quality.GateConfig) *models.QualityGateConfigModel {
	return &models.QualityGateConfigModel{
		ID:                 cfg.ID(),
		SID:                cfg.SID(),
		MachineID:          cfg.MachineID(),
		TestName:           cfg.TestName(),
		TestFrequencyHours: cfg.TestFrequencyHours(),
		ProductsPerTest:    cfg.ProductsPerTest(),
		IsRequired:         cfg.IsRequired(),
		BlockProduction:    cfg.BlockProduction(),
		MinPassRate:        cfg.MinPassRate(),
		IsActive:           cfg.IsActive(),
		CreatedAt:          cfg.CreatedAt(),
		UpdatedAt:          cfg.UpdatedAt(),
	}
}

func (mp *GateConfigMapperImpl) ToDomain(model *models.QualityGateConfigModel) (*quality.GateConfig, error) {
	return quality.ReconstructGateConfig(
		model.ID,
		model.SID,
		model.MachineID,
		model.TestName,
		model.TestFrequencyHours,
		model.ProductsPerTest,
		model.IsRequired,
		model.BlockProduction,
		model.MinPassRate,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
