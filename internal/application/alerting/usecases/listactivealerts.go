package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type ListActiveAlertsQuery struct {
	// MachineSID limits to one machine; empty lists the whole plant.
	MachineSID string
}

type ActiveAlertResult struct {
	AlertSID     string   `json:"alert_sid"`
	MachineID    uint     `json:"machine_id"`
	TestName     string   `json:"test_name"`
	ReasonCode   string   `json:"reason_code"`
	Severity     string   `json:"severity"`
	Message      string   `json:"message"`
	TargetRoles  []string `json:"target_roles"`
	RaisedAt     string   `json:"raised_at"`
	Acknowledged bool     `json:"acknowledged"`
}

type ListActiveAlertsResult struct {
	Alerts []ActiveAlertResult `json:"alerts"`
	Total  int                 `json:"total"`
}

type ListActiveAlertsUseCase struct {
	machineRepo machine.Repository
	alertRepo   alert.Repository
	logger      logger.Interface
}

func NewListActiveAlertsUseCase(
	machineRepo machine.Repository,
	alertRepo alert.Repository,
	logger logger.Interface,
) *ListActiveAlertsUseCase {
	return &ListActiveAlertsUseCase{
		machineRepo: machineRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

func (uc *ListActiveAlertsUseCase) Execute(ctx context.Context, query ListActiveAlertsQuery) (*ListActiveAlertsResult, error) {
	var (
		alerts []*alert.ProductionAlert
		err    error
	)

	if query.MachineSID != "" {
		m, findErr := uc.machineRepo.GetBySID(ctx, query.MachineSID)
		if findErr != nil {
			return nil, errors.NewNotFoundError("machine not found")
		}
		alerts, err = uc.alertRepo.ListActiveByMachine(ctx, m.ID())
	} else {
		alerts, err = uc.alertRepo.ListActive(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list active alerts", "error", err)
		return nil, errors.NewInternalError("failed to list active alerts")
	}

	result := &ListActiveAlertsResult{
		Alerts: make([]ActiveAlertResult, 0, len(alerts)),
		Total:  len(alerts),
	}
	for _, a := range alerts {
		result.Alerts = append(result.Alerts, ActiveAlertResult{
			AlertSID:     a.SID(),
			MachineID:    a.MachineID(),
			TestName:     a.TestName(),
			ReasonCode:   a.ReasonCode(),
			Severity:     a.Severity().String(),
			Message:      a.Message(),
			TargetRoles:  a.TargetRoles(),
			RaisedAt:     a.RaisedAt().Format("2006-01-02T15:04:05Z07:00"),
			Acknowledged: a.AckedAt() != nil,
		})
	}

	return result, nil
}
