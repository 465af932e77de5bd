package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/persistence/models"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.MachineModel{},
		&models.ShiftRecordModel{},
		&models.ProductionDeltaModel{},
		&models.QualityGateConfigModel{},
		&models.QualityTestRecordModel{},
		&models.ProductionAlertModel{},
	)
	require.NoError(t, err)

	return db
}

func createOpenRecord(t *testing.T, machineID, operatorID uint, start time.Time) *shift.Record {
	t.Helper()
	rec, err := shift.NewRecord(machineID, operatorID, start, vo.ShiftTypeDay, start, 1200)
	require.NoError(t, err)
	return rec
}

func TestShiftRecordRepository_OpenRecordConstraint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShiftRecordRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	t.Run("second open record for same pair conflicts", func(t *testing.T) {
		first := createOpenRecord(t, 1, 9, start)
		require.NoError(t, repo.Create(ctx, first))
		assert.NotZero(t, first.ID())

		second := createOpenRecord(t, 1, 9, start.Add(time.Hour))
		err := repo.Create(ctx, second)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("different operator on same machine is fine", func(t *testing.T) {
		other := createOpenRecord(t, 1, 10, start)
		assert.NoError(t, repo.Create(ctx, other))
	})

	t.Run("archiving releases the constraint", func(t *testing.T) {
		open, err := repo.FindOpen(ctx, 1, 9)
		require.NoError(t, err)

		require.NoError(t, open.Archive(start.Add(12*time.Hour)))
		require.NoError(t, repo.Update(ctx, open))

		_, err = repo.FindOpen(ctx, 1, 9)
		assert.True(t, errors.IsNotFoundError(err))

		next := createOpenRecord(t, 1, 9, start.Add(12*time.Hour))
		assert.NoError(t, repo.Create(ctx, next))
	})
}

func TestShiftRecordRepository_FindOpen(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShiftRecordRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	rec := createOpenRecord(t, 3, 9, start)
	require.NoError(t, rec.ApplyDelta(50, 30, 5))
	require.NoError(t, repo.Create(ctx, rec))

	found, err := repo.FindOpen(ctx, 3, 9)
	require.NoError(t, err)
	assert.Equal(t, rec.ID(), found.ID())
	assert.Equal(t, 50, found.TotalProduction())
	assert.Equal(t, 30, found.RuntimeMinutes())
	assert.Equal(t, vo.ShiftTypeDay, found.ShiftType())

	_, err = repo.FindOpen(ctx, 3, 99)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestShiftRecordRepository_FindOverlapping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShiftRecordRepository(db)
	ctx := context.Background()

	dayStart := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	archived := createOpenRecord(t, 5, 9, dayStart)
	require.NoError(t, archived.Archive(dayStart.Add(5*time.Hour)))
	require.NoError(t, repo.Create(ctx, archived))

	open := createOpenRecord(t, 5, 9, dayStart.Add(5*time.Hour))
	require.NoError(t, repo.Create(ctx, open))

	t.Run("window spanning both returns both", func(t *testing.T) {
		records, err := repo.FindOverlapping(ctx, 5, dayStart, dayStart.Add(12*time.Hour))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("window after archived record excludes it", func(t *testing.T) {
		records, err := repo.FindOverlapping(ctx, 5, dayStart.Add(6*time.Hour), dayStart.Add(12*time.Hour))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, open.ID(), records[0].ID())
	})

	t.Run("other machines are invisible", func(t *testing.T) {
		records, err := repo.FindOverlapping(ctx, 6, dayStart, dayStart.Add(12*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestShiftRecordRepository_ListOpenByMachine(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShiftRecordRepository(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	first := createOpenRecord(t, 11, 9, start)
	require.NoError(t, repo.Create(ctx, first))

	second := createOpenRecord(t, 11, 10, start.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, second))

	closed := createOpenRecord(t, 11, 12, start)
	require.NoError(t, closed.Archive(start.Add(6*time.Hour)))
	require.NoError(t, repo.Create(ctx, closed))

	other := createOpenRecord(t, 12, 9, start)
	require.NoError(t, repo.Create(ctx, other))

	open, err := repo.ListOpenByMachine(ctx, 11)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, first.ID(), open[0].ID())
	assert.Equal(t, second.ID(), open[1].ID())

	empty, err := repo.ListOpenByMachine(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestShiftRecordRepository_ListOpenEndedBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewShiftRecordRepository(db)
	ctx := context.Background()

	old := createOpenRecord(t, 7, 9, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, repo.Create(ctx, old))

	fresh := createOpenRecord(t, 8, 9, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, fresh))

	stale, err := repo.ListOpenEndedBefore(ctx, time.Now().UTC().Add(-time.Hour), 100)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.ID(), stale[0].ID())
}
