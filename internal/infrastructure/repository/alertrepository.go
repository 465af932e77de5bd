package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/alert"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/mapper"
)

// AlertRepository persists production alerts. The unique index on
// active_key is the storage-level backstop for the one-active-alert rule
// per machine and gate config.
type AlertRepository struct {
	db     *gorm.DB
	mapper mappers.AlertMapper
}

func NewAlertRepository(database *gorm.DB) *AlertRepository {
	return &AlertRepository{
		db:     database,
		mapper: mappers.NewAlertMapper(),
	}
}

func (r *AlertRepository) CreateIfNoneActive(ctx context.Context, a *alert.ProductionAlert) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("an active alert already exists for this machine and gate config", err.Error())
		}
		return fmt.Errorf("failed to create alert: %w", err)
	}

	a.SetID(model.ID)
	return nil
}

func (r *AlertRepository) Update(ctx context.Context, a *alert.ProductionAlert) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") forces the NULLed active_key through on resolve, which
	// releases the single-active-alert constraint.
	result := tx.
		Model(&models.ProductionAlertModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update alert: %w", result.Error)
	}

	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, alertID uint) (*alert.ProductionAlert, error) {
	var model models.ProductionAlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, alertID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("alert not found")
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AlertRepository) GetBySID(ctx context.Context, sid string) (*alert.ProductionAlert, error) {
	var model models.ProductionAlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("alert not found")
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AlertRepository) FindActive(ctx context.Context, machineID, configID uint) (*alert.ProductionAlert, error) {
	var model models.ProductionAlertModel
	tx := db.GetTxFromContext(ctx, r.db)

	key := models.ActiveKeyFor(machineID, configID)
	if err := tx.Where("active_key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no active alert")
		}
		return nil, fmt.Errorf("failed to find active alert: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AlertRepository) ListActiveByMachine(ctx context.Context, machineID uint) ([]*alert.ProductionAlert, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProductionAlertModel
	if err := tx.
		Where("machine_id = ? AND is_active = ?", machineID, true).
		Order("raised_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *AlertRepository) ListActive(ctx context.Context) ([]*alert.ProductionAlert, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProductionAlertModel
	if err := tx.
		Where("is_active = ?", true).
		Order("raised_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active alerts: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *AlertRepository) toDomainSlice(rows []models.ProductionAlertModel) ([]*alert.ProductionAlert, error) {
	return mapper.Rows(rows, r.mapper.ToDomain)
}
