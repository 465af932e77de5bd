package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

func createDelta(t *testing.T, machineID uint, produced int, eventID string, recordedAt time.Time) *shift.Delta {
	t.Helper()
	delta, err := shift.NewDelta(machineID, 9, produced, 30, 5, eventID, recordedAt)
	require.NoError(t, err)
	return delta
}

func TestProductionDeltaRepository_EventIDIdempotency(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductionDeltaRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	const eventID = "a1b2c3d4-0000-0000-0000-000000000001"

	first := createDelta(t, 1, 100, eventID, now)
	require.NoError(t, repo.Append(ctx, first))
	assert.NotZero(t, first.ID)

	replay := createDelta(t, 1, 100, eventID, now)
	err := repo.Append(ctx, replay)
	assert.True(t, errors.IsConflictError(err))

	found, err := repo.FindByEventID(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, 100, found.ProducedUnits)

	_, err = repo.FindByEventID(ctx, "a1b2c3d4-0000-0000-0000-00000000ffff")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestProductionDeltaRepository_SumProducedSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductionDeltaRepository(db)
	ctx := context.Background()

	baseline := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	before := createDelta(t, 2, 40, "a1b2c3d4-0000-0000-0000-000000000010", baseline.Add(-time.Hour))
	require.NoError(t, repo.Append(ctx, before))

	after1 := createDelta(t, 2, 25, "a1b2c3d4-0000-0000-0000-000000000011", baseline.Add(time.Hour))
	require.NoError(t, repo.Append(ctx, after1))

	after2 := createDelta(t, 2, 35, "a1b2c3d4-0000-0000-0000-000000000012", baseline.Add(2*time.Hour))
	require.NoError(t, repo.Append(ctx, after2))

	otherMachine := createDelta(t, 3, 500, "a1b2c3d4-0000-0000-0000-000000000013", baseline.Add(time.Hour))
	require.NoError(t, repo.Append(ctx, otherMachine))

	t.Run("sums only deltas after the baseline", func(t *testing.T) {
		total, err := repo.SumProducedSince(ctx, 2, baseline)
		require.NoError(t, err)
		assert.Equal(t, 60, total)
	})

	t.Run("baseline delta itself is excluded", func(t *testing.T) {
		total, err := repo.SumProducedSince(ctx, 2, baseline.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 35, total)
	})

	t.Run("no deltas yields zero", func(t *testing.T) {
		total, err := repo.SumProducedSince(ctx, 99, baseline)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}
