package models

import (
	"time"

	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// QualityGateConfigModel represents the database persistence model for
// quality gate configurations.
type QualityGateConfigModel struct {
	ID                 uint    `gorm:"primarykey"`
	SID                string  `gorm:"uniqueIndex;size:20;not null"`
	MachineID          uint    `gorm:"not null;index:idx_gate_machine_active"`
	TestName           string  `gorm:"size:100;not null"`
	TestFrequencyHours float64 `gorm:"not null;default:0"`
	ProductsPerTest    int     `gorm:"not null;default:0"`
	IsRequired         bool    `gorm:"not null;default:true"`
	BlockProduction    bool    `gorm:"not null;default:false"`
	MinPassRate        float64 `gorm:"not null;default:0"`
	IsActive           bool    `gorm:"not null;default:true;index:idx_gate_machine_active"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (QualityGateConfigModel) TableName() string {
	return constants.TableQualityGateConfigs
}
