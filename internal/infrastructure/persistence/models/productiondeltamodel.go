package models

import (
	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// ProductionDeltaModel is the append-only production event log. The unique
// index on EventID is the idempotency guarantee for retried deltas; the
// composite machine/recorded_at index serves the since-baseline sums used
// by the quality gate evaluation.
type ProductionDeltaModel struct {
	ID              uint   `gorm:"primarykey"`
	EventID         string `gorm:"uniqueIndex;size:36;not null"`
	MachineID       uint   `gorm:"not null;index:idx_delta_machine_recorded"`
	OperatorID      uint   `gorm:"not null"`
	ProducedUnits   int    `gorm:"not null;default:0"`
	RuntimeMinutes  int    `gorm:"not null;default:0"`
	DowntimeMinutes int    `gorm:"not null;default:0"`
	RecordedAt      int64  `gorm:"not null;index:idx_delta_machine_recorded"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null"`
}

// TableName specifies the table name for GORM
func (ProductionDeltaModel) TableName() string {
	return constants.TableProductionDeltas
}
