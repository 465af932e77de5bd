package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/mapper"
)

// ShiftRecordRepository persists shift records. The unique index on
// open_key is the storage-level backstop for the one-open-record rule, so
// a concurrent rollover losing the race surfaces as a conflict error here
// rather than a second open row.
type ShiftRecordRepository struct {
	db     *gorm.DB
	mapper mappers.ShiftRecordMapper
}

func NewShiftRecordRepository(database *gorm.DB) *ShiftRecordRepository {
	return &ShiftRecordRepository{
		db:     database,
		mapper: mappers.NewShiftRecordMapper(),
	}
}

func (r *ShiftRecordRepository) Create(ctx context.Context, record *shift.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("an open shift record already exists for this machine and operator", err.Error())
		}
		return fmt.Errorf("failed to create shift record: %w", err)
	}

	return record.SetID(model.ID)
}

func (r *ShiftRecordRepository) Update(ctx context.Context, record *shift.Record) error {
	model := r.mapper.ToModel(record)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select("*") forces zero values and the NULLed open_key through,
	// which is how archiving releases the open-record constraint.
	result := tx.
		Model(&models.ShiftRecordModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("an open shift record already exists for this machine and operator", result.Error.Error())
		}
		return fmt.Errorf("failed to update shift record: %w", result.Error)
	}

	return nil
}

func (r *ShiftRecordRepository) FindOpen(ctx context.Context, machineID, operatorID uint) (*shift.Record, error) {
	var model models.ShiftRecordModel
	tx := db.GetTxFromContext(ctx, r.db)

	key := models.OpenKeyFor(machineID, operatorID)
	if err := tx.Where("open_key = ?", key).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no open shift record")
		}
		return nil, fmt.Errorf("failed to find open shift record: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ShiftRecordRepository) ListOpenByMachine(ctx context.Context, machineID uint) ([]*shift.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ShiftRecordModel
	if err := tx.
		Where("machine_id = ?", machineID).
		Where("open_key IS NOT NULL").
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list open shift records for machine: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ShiftRecordRepository) FindOverlapping(ctx context.Context, machineID uint, start, end time.Time) ([]*shift.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ShiftRecordModel
	if err := tx.
		Where("machine_id = ?", machineID).
		Where("start_time < ?", end.UnixMilli()).
		Where("end_time IS NULL OR end_time > ?", start.UnixMilli()).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping shift records: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ShiftRecordRepository) ListOpenEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*shift.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ShiftRecordModel
	if err := tx.
		Where("is_archived = ?", false).
		Where("start_time <= ?", cutoff.UnixMilli()).
		Order("start_time ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list open shift records: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ShiftRecordRepository) ListByMachineAndDate(ctx context.Context, machineID uint, shiftDate time.Time) ([]*shift.Record, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ShiftRecordModel
	if err := tx.
		Where("machine_id = ? AND shift_date = ?", machineID, biztime.FormatDate(shiftDate)).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list shift records by date: %w", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ShiftRecordRepository) toDomainSlice(rows []models.ShiftRecordModel) ([]*shift.Record, error) {
	return mapper.Rows(rows, r.mapper.ToDomain)
}
