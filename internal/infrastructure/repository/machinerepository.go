package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/machine"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/mappers"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/mapper"
)

type MachineRepository struct {
	db     *gorm.DB
	mapper mappers.MachineMapper
}

func NewMachineRepository(database *gorm.DB) *MachineRepository {
	return &MachineRepository{
		db:     database,
		mapper: mappers.NewMachineMapper(),
	}
}

func (r *MachineRepository) Create(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("machine already exists", err.Error())
		}
		return fmt.Errorf("failed to create machine: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MachineRepository) GetByID(ctx context.Context, machineID uint) (*machine.Machine, error) {
	var model models.MachineModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, machineID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("machine not found")
		}
		return nil, fmt.Errorf("failed to find machine: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *MachineRepository) GetBySID(ctx context.Context, sid string) (*machine.Machine, error) {
	var model models.MachineModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("machine not found")
		}
		return nil, fmt.Errorf("failed to find machine: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *MachineRepository) Update(ctx context.Context, m *machine.Machine) error {
	model := r.mapper.ToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.MachineModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update machine: %w", result.Error)
	}

	return nil
}

func (r *MachineRepository) List(ctx context.Context, limit, offset int) ([]*machine.Machine, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.MachineModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count machines: %w", err)
	}

	var rows []models.MachineModel
	if err := tx.
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list machines: %w", err)
	}

	machines, err := mapper.Rows(rows, r.mapper.ToDomain)
	if err != nil {
		return nil, 0, err
	}

	return machines, total, nil
}

func (r *MachineRepository) ListIDs(ctx context.Context) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ids []uint
	if err := tx.
		Model(&models.MachineModel{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list machine IDs: %w", err)
	}

	return ids, nil
}
