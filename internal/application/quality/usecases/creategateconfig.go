package usecases

import (
	"context"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

type CreateGateConfigCommand struct {
	MachineSID         string
	TestName           string
	TestFrequencyHours float64
	ProductsPerTest    int
	IsRequired         bool
	BlockProduction    bool
	MinPassRate        float64
}

type CreateGateConfigResult struct {
	ConfigSID  string `json:"config_sid"`
	MachineSID string `json:"machine_sid"`
	TestName   string `json:"test_name"`
}

type CreateGateConfigUseCase struct {
	machineRepo machine.Repository
	configRepo  quality.GateConfigRepository
	logger      logger.Interface
}

func NewCreateGateConfigUseCase(
	machineRepo machine.Repository,
	configRepo quality.GateConfigRepository,
	logger logger.Interface,
) *CreateGateConfigUseCase {
	return &CreateGateConfigUseCase{
		machineRepo: machineRepo,
		configRepo:  configRepo,
		logger:      logger,
	}
}

func (uc *CreateGateConfigUseCase) Execute(ctx context.Context, cmd CreateGateConfigCommand) (*CreateGateConfigResult, error) {
	if cmd.MachineSID == "" {
		return nil, errors.NewValidationError("machine SID is required")
	}

	m, err := uc.machineRepo.GetBySID(ctx, cmd.MachineSID)
	if err != nil {
		uc.logger.Errorw("failed to find machine", "error", err, "machine_sid", cmd.MachineSID)
		return nil, errors.NewNotFoundError("machine not found")
	}

	cfg, err := quality.NewGateConfig(
		m.ID(),
		cmd.TestName,
		cmd.TestFrequencyHours,
		cmd.ProductsPerTest,
		cmd.IsRequired,
		cmd.BlockProduction,
		cmd.MinPassRate,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.configRepo.Create(ctx, cfg); err != nil {
		uc.logger.Errorw("failed to create gate config", "error", err)
		return nil, errors.NewInternalError("failed to create gate config")
	}

	uc.logger.Infow("gate config created",
		"config_sid", cfg.SID(),
		"machine_sid", cmd.MachineSID,
		"test_name", cmd.TestName)

	return &CreateGateConfigResult{
		ConfigSID:  cfg.SID(),
		MachineSID: cmd.MachineSID,
		TestName:   cmd.TestName,
	}, nil
}
