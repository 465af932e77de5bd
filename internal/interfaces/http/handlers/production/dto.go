package production

import (
	"github.com/shopfloor-io/shopfloor/internal/application/production/usecases"
)

type RecordDeltaRequest struct {
	EventID         string `json:"event_id" binding:"required,max=36"`
	ProducedUnits   int    `json:"produced_units" binding:"min=0"`
	RuntimeMinutes  int    `json:"runtime_minutes" binding:"min=0"`
	DowntimeMinutes int    `json:"downtime_minutes" binding:"min=0"`
}

func (r *RecordDeltaRequest) ToCommand(machineSID string, operatorID uint) usecases.RecordProductionDeltaCommand {
	return usecases.RecordProductionDeltaCommand{
		MachineSID:      machineSID,
		OperatorID:      operatorID,
		EventID:         r.EventID,
		ProducedUnits:   r.ProducedUnits,
		RuntimeMinutes:  r.RuntimeMinutes,
		DowntimeMinutes: r.DowntimeMinutes,
	}
}

type SetHandoverNoteRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

func (r *SetHandoverNoteRequest) ToCommand(machineSID string, operatorID uint) usecases.SetHandoverNoteCommand {
	return usecases.SetHandoverNoteCommand{
		MachineSID: machineSID,
		OperatorID: operatorID,
		Note:       r.Note,
	}
}
