package mappers

import (
	"fmt"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/machine/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
)

// MachineMapper handles the conversion between Machine domain entities and
// persistence models.
type MachineMapper interface {
	ToModel(m *machine.Machine) *models.MachineModel
	ToDomain(model *models.MachineModel) (*machine.Machine, error)
}

// MachineMapperImpl is the concrete implementation of MachineMapper.
type MachineMapperImpl struct{}

// NewMachineMapper creates a new MachineMapper.
func NewMachineMapper() MachineMapper {
	return &MachineMapperImpl{}
}

func (mp *MachineMapperImpl) ToModel(m *machine.Machine) *models.MachineModel {
	return &models.MachineModel{
		ID:               m.ID(),
		SID:              m.SID(),
		Name:             m.Name(),
		Status:           m.Status().String(),
		ProductionSpeed:  m.ProductionSpeed(),
		TargetProduction: m.TargetProduction(),
		TeamCode:         m.TeamCode(),
		CreatedAt:        m.CreatedAt(),
		UpdatedAt:        m.UpdatedAt(),
	}
}

func (mp *MachineMapperImpl) ToDomain(model *models.MachineModel) (*machine.Machine, error) {
	status, err := vo.NewMachineStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid machine status in storage (id=%d): %w", model.ID, err)
	}

	return machine.ReconstructMachine(
		model.ID,
		model.SID,
		model.Name,
		status,
		model.ProductionSpeed,
		model.TargetProduction,
		model.TeamCode,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
