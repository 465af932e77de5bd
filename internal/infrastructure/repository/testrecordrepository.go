package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/quality"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

type TestRecordRepository struct {
	db     *gorm.DB
	mapper mappers.TestRecordMapper
}

func NewTestRecordRepository(database *gorm.DB) *TestRecordRepository {
	return &TestRecordRepository{
		db:     database,
		mapper: mappers.NewTestRecordMapper(),
	}
}

func (r *TestRecordRepository) Append(ctx context.Context, record *quality.TestRecord) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append quality test record: %w", err)
	}

	record.ID = model.ID
	return nil
}

func (r *TestRecordRepository) FindLatest(ctx context.Context, machineID, configID uint) (*quality.TestRecord, error) {
	var model models.QualityTestRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("machine_id = ? AND config_id = ?", machineID, configID).
		Order("test_date DESC").
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no quality test recorded")
		}
		return nil, fmt.Errorf("failed to find latest quality test: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *TestRecordRepository) ListSince(ctx context.Context, machineID, configID uint, since time.Time) ([]*quality.TestRecord, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.QualityTestRecordModel
	if err := tx.
		Where("machine_id = ? AND config_id = ? AND test_date >= ?", machineID, configID, since.UnixMilli()).
		Order("test_date ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list quality tests: %w", err)
	}

	records := make([]*quality.TestRecord, 0, len(rows))
	for i := range rows {
		records = append(records, r.mapper.ToDomain(&rows[i]))
	}

	return records, nil
}
