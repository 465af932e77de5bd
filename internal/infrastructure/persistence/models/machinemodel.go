package models

import (
	"time"

	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
)

// MachineModel represents the database persistence model for machines.
// This is the anti-corruption layer between domain and database.
type MachineModel struct {
	ID               uint    `gorm:"primarykey"`
	SID              string  `gorm:"uniqueIndex;size:20;not null"`
	Name             string  `gorm:"size:100;not null"`
	Status           string  `gorm:"size:20;not null;index"`
	ProductionSpeed  float64 `gorm:"not null"`
	TargetProduction int     `gorm:"not null;default:0"`
	TeamCode         string  `gorm:"size:10;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

// TableName specifies the table name for GORM
func (MachineModel) TableName() string {
	return constants.TableMachines
}
