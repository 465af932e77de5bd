package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/alert/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
)

// AlertMapper handles the conversion between ProductionAlert domain
// entities and persistence models. The mapper owns the ActiveKey lifecycle:
// active alerts carry the machine/config key, resolved alerts carry NULL so
// the unique index only constrains active rows.
type AlertMapper interface {
	ToModel(a *alert.ProductionAlert) *models.ProductionAlertModel
	ToDomain(model *models.ProductionAlertModel) (*alert.ProductionAlert, error)
}

// AlertMapperImpl is the concrete implementation of AlertMapper.
type AlertMapperImpl struct{}

// NewAlertMapper creates a new AlertMapper.
func NewAlertMapper() AlertMapper {
	return &AlertMapperImpl{}
}

func (mp *AlertMapperImpl) ToModel(a *alert.ProductionAlert) *models.ProductionAlertModel {
	model := &models.ProductionAlertModel{
		ID:         a.ID(),
		SID:        a.SID(),
		MachineID:  a.MachineID(),
		ConfigID:   a.ConfigID(),
		ReasonCode: a.ReasonCode(),
		TestName:   a.TestName(),
		Measured:   a.Measured(),
		Threshold:  a.Threshold(),
		Severity:   a.Severity().String(),
		Message:    a.Message(),
		IsActive:   a.IsActive(),
		RaisedAt:   timeToMillis(a.RaisedAt()),
		ResolvedAt: timePtrToMillis(a.ResolvedAt()),
		AckedBy:    a.AckedBy(),
		AckedAt:    timePtrToMillis(a.AckedAt()),
		CreatedAt:  a.CreatedAt(),
		UpdatedAt:  a.UpdatedAt(),
	}

	if roles := a.TargetRoles(); len(roles) > 0 {
		rolesJSON, _ := json.Marshal(roles)
		model.TargetRoles = datatypes.JSON(rolesJSON)
	}

	if a.IsActive() {
		key := models.ActiveKeyFor(a.MachineID(), a.ConfigID())
		model.ActiveKey = &key
	}

	return model
}

func (mp *AlertMapperImpl) ToDomain(model *models.ProductionAlertModel) (*alert.ProductionAlert, error) {
	severity, err := vo.NewSeverity(model.Severity)
	if err != nil {
		return nil, fmt.Errorf("invalid alert severity in storage (id=%d): %w", model.ID, err)
	}

	var targetRoles []string
	if len(model.TargetRoles) > 0 {
		if err := json.Unmarshal(model.TargetRoles, &targetRoles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal alert target roles (id=%d): %w", model.ID, err)
		}
	}

	return alert.ReconstructProductionAlert(
		model.ID,
		model.SID,
		model.MachineID,
		model.ConfigID,
		model.ReasonCode,
		model.TestName,
		model.Measured,
		model.Threshold,
		severity,
		model.Message,
		targetRoles,
		model.IsActive,
		millisToTime(model.RaisedAt),
		millisPtrToTime(model.ResolvedAt),
		model.AckedBy,
		millisPtrToTime(model.AckedAt),
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
