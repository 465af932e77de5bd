package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type EvaluateQualityGateQuery struct {
	MachineSID string
}

type GateReasonResult struct {
	ConfigSID       string  `json:"config_sid"`
	TestName        string  `json:"test_name"`
	Code            string  `json:"code"`
	Measured        float64 `json:"measured"`
	Threshold       float64 `json:"threshold"`
	ExceedBy        float64 `json:"exceed_by"`
	BlockProduction bool    `json:"block_production"`
}

type EvaluateQualityGateResult struct {
	MachineSID       string             `json:"machine_sid"`
	Status           string             `json:"status"`
	BlocksProduction bool               `json:"blocks_production"`
	Reasons          []GateReasonResult `json:"reasons"`
}

type EvaluateQualityGateUseCase struct {
	machineRepo machine.Repository
	states      GateStateProvider
	logger      logger.Interface
}

func NewEvaluateQualityGateUseCase(
	machineRepo machine.Repository,
	states GateStateProvider,
	logger logger.Interface,
) *EvaluateQualityGateUseCase {
	return &EvaluateQualityGateUseCase{
		machineRepo: machineRepo,
		states:      states,
		logger:      logger,
	}
}

func (uc *EvaluateQualityGateUseCase) Execute(ctx context.Context, query EvaluateQualityGateQuery) (*EvaluateQualityGateResult, error) {
	if query.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, query.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", query.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	states, err := uc.states.StatesFor(ctx, m.ID())
	if err != nil {
		uc.logger.Errorw("failed to load gate states", "error", err, "machine_id", m.ID())
		return nil, errors.NewInternalError("failed to load gate states")
	}

	status := quality.Evaluate(states, biztime.NowUTC())

	return toGateResult(query.MachineSID, status), nil
}

func toGateResult(machineSID string, status quality.GateStatus) *EvaluateQualityGateResult {
	result := &EvaluateQualityGateResult{
		MachineSID:       machineSID,
		Status:           "OK",
		BlocksProduction: status.BlocksProduction(),
		Reasons:          make([]GateReasonResult, 0, len(status.Reasons)),
	}
	if status.Pending {
		result.Status = "PENDING"
	}
	for _, r := range status.Reasons {
		result.Reasons = append(result.Reasons, GateReasonResult{
			ConfigSID:       r.ConfigSID,
			TestName:        r.TestName,
			Code:            string(r.Code),
			Measured:        r.Measured,
			Threshold:       r.Threshold,
			ExceedBy:        r.ExceedBy,
			BlockProduction: r.BlockProduction,
		})
	}
	return result
}
