package models

import (
	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// QualityTestRecordModel is the append-only quality test log. The newest
// row per (machine, config) is the baseline for gate evaluation, served by
// the composite index ordered on test_date.
type QualityTestRecordModel struct {
	ID         uint   `gorm:"primarykey"`
	MachineID  uint   `gorm:"not null;index:idx_test_machine_config_date"`
	ConfigID   uint   `gorm:"not null;index:idx_test_machine_config_date"`
	OperatorID uint   `gorm:"not null"`
	TestDate   int64  `gorm:"not null;index:idx_test_machine_config_date"`
	Approved   bool   `gorm:"not null;default:false"`
	Notes      string `gorm:"type:text"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

// TableName specifies the table name for GORM
func (QualityTestRecordModel) TableName() string {
	return constants.TableQualityTestRecords
}
