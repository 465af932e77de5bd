package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// GormAutoMigrateStrategy lets gorm reconcile the schema directly from the
// persistence models. Development only; deployed environments run versioned
// SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting GORM auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	s.logger.Infow("GORM auto-migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns the full set of persistence models in
// dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MachineModel{},
		&models.ShiftRecordModel{},
		&models.ProductionDeltaModel{},
		&models.QualityGateConfigModel{},
		&models.QualityTestRecordModel{},
		&models.ProductionAlertModel{},
	}
}
