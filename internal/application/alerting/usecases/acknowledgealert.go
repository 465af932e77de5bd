package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type AcknowledgeAlertCommand struct {
	AlertSID   string
	OperatorID uint
}

type AcknowledgeAlertResult struct {
	AlertSID string `json:"alert_sid"`
	AckedBy  uint   `json:"acked_by"`
	AckedAt  string `json:"acked_at"`
}

type AcknowledgeAlertUseCase struct {
	alertRepo alert.Repository
	logger    logger.Interface
}

func NewAcknowledgeAlertUseCase(alertRepo alert.Repository, logger logger.Interface) *AcknowledgeAlertUseCase {
	return &AcknowledgeAlertUseCase{
		alertRepo: alertRepo,
		logger:    logger,
	}
}

func (uc *AcknowledgeAlertUseCase) Execute(ctx context.Context, cmd AcknowledgeAlertCommand) (*AcknowledgeAlertResult, error) {
	if cmd.AlertSID == "" {
		return nil, errors.NewValidationError("alert SID is required")
	}
	if cmd.OperatorID == 0 {
		return nil, errors.NewValidationError("operator ID is required")
	}

	a, err := uc.alertRepo.GetBySID(ctx, cmd.AlertSID)
	if err != nil {
		uc.logger.Errorw("failed to find alert", "error", err, "alert_sid", cmd.AlertSID)
		return nil, errors.NewNotFoundError("alert not found")
	}

	if err := a.Acknowledge(cmd.OperatorID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.alertRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update alert", "error", err, "alert_sid", cmd.AlertSID)
		return nil, errors.NewInternalError("failed to acknowledge alert")
	}

	uc.logger.Infow("alert acknowledged", "alert_sid", cmd.AlertSID, "operator_id", cmd.OperatorID)

	return &AcknowledgeAlertResult{
		AlertSID: cmd.AlertSID,
		AckedBy:  cmd.OperatorID,
		AckedAt:  a.AckedAt().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
