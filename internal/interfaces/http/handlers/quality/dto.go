package quality

import (
	"github.com/shopfloor-io/shopfloor/internal/application/quality/usecases"
)

type CreateGateConfigRequest struct {
	TestName           string  `json:"test_name" binding:"required,max=100"`
	TestFrequencyHours float64 `json:"test_frequency_hours" binding:"min=0"`
	ProductsPerTest    int     `json:"products_per_test" binding:"min=0"`
	IsRequired         bool    `json:"is_required"`
	BlockProduction    bool    `json:"block_production"`
	MinPassRate        float64 `json:"min_pass_rate" binding:"min=0,max=100"`
}

func (r *CreateGateConfigRequest) ToCommand(machineSID string) usecases.CreateGateConfigCommand {
	return usecases.CreateGateConfigCommand{
		MachineSID:         machineSID,
		TestName:           r.TestName,
		TestFrequencyHours: r.TestFrequencyHours,
		ProductsPerTest:    r.ProductsPerTest,
		IsRequired:         r.IsRequired,
		BlockProduction:    r.BlockProduction,
		MinPassRate:        r.MinPassRate,
	}
}

type RecordTestRequest struct {
	ConfigSID string `json:"config_sid" binding:"required"`
	Approved  bool   `json:"approved"`
	Notes     string `json:"notes,omitempty" binding:"max=2000"`
}

func (r *RecordTestRequest) ToCommand(machineSID string, operatorID uint) usecases.RecordQualityTestCommand {
	return usecases.RecordQualityTestCommand{
		MachineSID: machineSID,
		ConfigSID:  r.ConfigSID,
		OperatorID: operatorID,
		Approved:   r.Approved,
		Notes:      r.Notes,
	}
}
