package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/mapper"
)

type GateConfigRepository struct {
	db     *gorm.DB
	mapper mappers.GateConfigMapper
}

func NewGateConfigRepository(database *gorm.DB) *GateConfigRepository {
	return &GateConfigRepository{
		db:     database,
		mapper: mappers.NewGateConfigMapper(),
	}
}

func (r *GateConfigRepository) Create(ctx context.Context, cfg *quality.GateConfig) error {
	model := r.mapper.ToModel(cfg)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("gate config already exists", err.Error())
		}
		return fmt.Errorf("failed to create gate config: %w", err)
	}

	return cfg.SetID(model.ID)
}

func (r *GateConfigRepository) Update(ctx context.Context, cfg *quality.GateConfig) error {
	model := r.mapper.ToModel(cfg)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.QualityGateConfigModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update gate config: %w", result.Error)
	}

	return nil
}

func (r *GateConfigRepository) GetByID(ctx context.Context, configID uint) (*quality.GateConfig, error) {
	var model models.QualityGateConfigModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, configID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("gate config not found")
		}
		return nil, fmt.Errorf("failed to find gate config: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *GateConfigRepository) GetBySID(ctx context.Context, sid string) (*quality.GateConfig, error) {
	var model models.QualityGateConfigModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("gate config not found")
		}
		return nil, fmt.Errorf("failed to find gate config: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *GateConfigRepository) ListActiveByMachine(ctx context.Context, machineID uint) ([]*quality.GateConfig, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.QualityGateConfigModel
	if err := tx.
		Where("machine_id = ? AND is_active = ?", machineID, true).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list gate configs: %w", err)
	}

	return mapper.Rows(rows, r.mapper.ToDomain)
}
