package models

import (
	"fmt"
	"time"

	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// ShiftRecordModel represents the database persistence model for shift
// records. OpenKey carries "machineID:operatorID" while the record is open
// and is NULLed on archive; its unique index is what guarantees at most one
// open record per machine/operator pair even under concurrent rollovers.
type ShiftRecordModel struct {
	ID                 uint    `gorm:"primarykey"`
	MachineID          uint    `gorm:"not null;index:idx_shift_machine_date"`
	OperatorID         uint    `gorm:"not null;index"`
	ShiftDate          string  `gorm:"size:10;not null;index:idx_shift_machine_date"`
	ShiftType          string  `gorm:"size:10;not null"`
	StartTime          int64   `gorm:"not null;index"`
	EndTime            *int64
	TotalProduction    int     `gorm:"not null;default:0"`
	TargetProduction   int     `gorm:"not null;default:0"`
	Efficiency         float64 `gorm:"not null;default:0"`
	RuntimeMinutes     int     `gorm:"not null;default:0"`
	DowntimeMinutes    int     `gorm:"not null;default:0"`
	QualityTestsCount  int     `gorm:"not null;default:0"`
	ApprovedTestsCount int     `gorm:"not null;default:0"`
	HandoverNote       string  `gorm:"type:text"`
	IsArchived         bool    `gorm:"not null;default:false;index"`
	OpenKey            *string `gorm:"uniqueIndex;size:64"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (ShiftRecordModel) TableName() string {
	return constants.TableShiftRecords
}

// OpenKeyFor builds the open-record uniqueness key for a machine/operator pair.
func OpenKeyFor(machineID, operatorID uint) string {
	return fmt.Sprintf("%d:%d", machineID, operatorID)
}
