package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

// ProductionDeltaRepository is the append-only production event log. The
// unique index on event_id turns a retried append into a conflict error,
// which callers treat as already-recorded.
type ProductionDeltaRepository struct {
	db     *gorm.DB
	mapper mappers.ProductionDeltaMapper
}

func NewProductionDeltaRepository(database *gorm.DB) *ProductionDeltaRepository {
	return &ProductionDeltaRepository{
		db:     database,
		mapper: mappers.NewProductionDeltaMapper(),
	}
}

func (r *ProductionDeltaRepository) Append(ctx context.Context, delta *shift.Delta) error {
	model := r.mapper.ToModel(delta)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("production delta already recorded", err.Error())
		}
		return fmt.Errorf("failed to append production delta: %w", err)
	}

	delta.ID = model.ID
	return nil
}

func (r *ProductionDeltaRepository) FindByEventID(ctx context.Context, eventID string) (*shift.Delta, error) {
	var model models.ProductionDeltaModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("event_id = ?", eventID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("production delta not found")
		}
		return nil, fmt.Errorf("failed to find production delta: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *ProductionDeltaRepository) SumProducedSince(ctx context.Context, machineID uint, since time.Time) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	err := tx.
		Model(&models.ProductionDeltaModel{}).
		Where("machine_id = ? AND recorded_at > ?", machineID, since.UnixMilli()).
		Select("COALESCE(SUM(produced_units), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum produced units: %w", err)
	}

	return int(total), nil
}
