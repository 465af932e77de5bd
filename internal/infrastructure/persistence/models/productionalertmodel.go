package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// ProductionAlertModel represents the database persistence model for
// quality-gate alerts. ActiveKey carries "machineID:configID" while the
// alert is active and is NULLed on resolve; its unique index enforces the
// single-active-alert rule per machine and gate config.
type ProductionAlertModel struct {
	ID          uint    `gorm:"primarykey"`
	SID         string  `gorm:"uniqueIndex;size:20;not null"`
	MachineID   uint    `gorm:"not null;index"`
	ConfigID    uint    `gorm:"not null;index"`
	ReasonCode  string  `gorm:"size:30;not null"`
	TestName    string  `gorm:"size:100;not null"`
	Measured    float64 `gorm:"not null;default:0"`
	Threshold   float64 `gorm:"not null;default:0"`
	Severity    string  `gorm:"size:10;not null"`
	Message     string  `gorm:"type:text;not null"`
	TargetRoles datatypes.JSON
	IsActive    bool    `gorm:"not null;default:true;index"`
	ActiveKey   *string `gorm:"uniqueIndex;size:64"`
	RaisedAt    int64   `gorm:"not null;index"`
	ResolvedAt  *int64
	AckedBy     *uint
	AckedAt     *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ProductionAlertModel) TableName() string {
	return constants.TableProductionAlerts
}

// ActiveKeyFor builds the active-alert uniqueness key for a machine/config pair.
func ActiveKeyFor(machineID, configID uint) string {
	return fmt.Sprintf("%d:%d", machineID, configID)
}
