package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
)

// fourTeamTable is a classic 4-team continuous rotation: each team works
// two mornings, two afternoons, two nights, then rests two days.
func fourTeamTable() [][]vo.RotationSlot {
	m, a, n, o := vo.RotationSlotMorning, vo.RotationSlotAfternoon, vo.RotationSlotNight, vo.RotationSlotOff
	return [][]vo.RotationSlot{
		{m, a, n, o},
		{m, a, n, o},
		{a, n, o, m},
		{a, n, o, m},
		{n, o, m, a},
		{n, o, m, a},
		{o, m, a, n},
		{o, m, a, n},
	}
}

func newTestSchedule(t *testing.T) *RotationSchedule {
	t.Helper()
	s, err := NewRotationSchedule(
		plantTime(2026, 1, 5, 0, 0),
		fourTeamTable(),
		map[string]int{"A": 0, "B": 1, "C": 2, "D": 3},
	)
	require.NoError(t, err)
	return s
}

func TestNewRotationSchedule_Validation(t *testing.T) {
	ref := plantTime(2026, 1, 5, 0, 0)
	teams := map[string]int{"A": 0}

	t.Run("should reject empty table", func(t *testing.T) {
		_, err := NewRotationSchedule(ref, nil, teams)
		assert.Error(t, err)
	})

	t.Run("should reject zero reference date", func(t *testing.T) {
		_, err := NewRotationSchedule(time.Time{}, fourTeamTable(), teams)
		assert.Error(t, err)
	})

	t.Run("should reject ragged rows", func(t *testing.T) {
		table := fourTeamTable()
		table[3] = table[3][:2]
		_, err := NewRotationSchedule(ref, table, map[string]int{"A": 0, "B": 1, "C": 2, "D": 3})
		assert.Error(t, err)
	})

	t.Run("should reject phase offset out of range", func(t *testing.T) {
		_, err := NewRotationSchedule(ref, fourTeamTable(), map[string]int{"A": 4})
		assert.Error(t, err)
	})

	t.Run("should reject empty team map", func(t *testing.T) {
		_, err := NewRotationSchedule(ref, fourTeamTable(), map[string]int{})
		assert.Error(t, err)
	})
}

func TestRotationSchedule_SlotFor(t *testing.T) {
	s := newTestSchedule(t)

	t.Run("reference day is row zero", func(t *testing.T) {
		slot, err := s.SlotFor("A", plantTime(2026, 1, 5, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, vo.RotationSlotMorning, slot)
	})

	t.Run("phase offset shifts the column", func(t *testing.T) {
		slot, err := s.SlotFor("C", plantTime(2026, 1, 5, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, vo.RotationSlotNight, slot)
	})

	t.Run("wraps after one cycle", func(t *testing.T) {
		first, err := s.SlotFor("B", plantTime(2026, 1, 5, 0, 0))
		require.NoError(t, err)
		wrapped, err := s.SlotFor("B", plantTime(2026, 1, 13, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, first, wrapped)
	})

	t.Run("dates before the reference wrap backwards", func(t *testing.T) {
		slot, err := s.SlotFor("A", plantTime(2026, 1, 4, 0, 0))
		require.NoError(t, err)
		// One day before the reference lands on the last table row.
		assert.Equal(t, vo.RotationSlotOff, slot)
	})

	t.Run("time of day does not change the slot", func(t *testing.T) {
		morning, err := s.SlotFor("A", plantTime(2026, 1, 7, 6, 0))
		require.NoError(t, err)
		evening, err := s.SlotFor("A", plantTime(2026, 1, 7, 23, 0))
		require.NoError(t, err)
		assert.Equal(t, morning, evening)
	})

	t.Run("day count survives the spring-forward transition", func(t *testing.T) {
		// 2026-04-05 is 90 calendar days after the reference, but the plant
		// clock skips an hour on 2026-03-29, so an hour-division count would
		// land one row early. 90 mod 8 = 2, and row 2 for team A is afternoon.
		slot, err := s.SlotFor("A", plantTime(2026, 4, 5, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, vo.RotationSlotAfternoon, slot)
	})

	t.Run("slots stay daily across the transition week", func(t *testing.T) {
		before, err := s.SlotFor("A", plantTime(2026, 3, 28, 12, 0))
		require.NoError(t, err)
		after, err := s.SlotFor("A", plantTime(2026, 3, 29, 12, 0))
		require.NoError(t, err)

		entries, err := s.Schedule("A", plantTime(2026, 3, 28, 0, 0), 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, before, entries[0].Slot)
		assert.Equal(t, after, entries[1].Slot)
	})

	t.Run("unknown team errors", func(t *testing.T) {
		_, err := s.SlotFor("Z", plantTime(2026, 1, 5, 0, 0))
		assert.Error(t, err)
	})
}

func TestRotationSchedule_Schedule(t *testing.T) {
	s := newTestSchedule(t)

	t.Run("repeats over two full cycles", func(t *testing.T) {
		entries, err := s.Schedule("A", plantTime(2026, 1, 5, 0, 0), 2*s.CycleLength())
		require.NoError(t, err)
		require.Len(t, entries, 16)

		for i := 0; i < s.CycleLength(); i++ {
			assert.Equal(t, entries[i].Slot, entries[i+s.CycleLength()].Slot,
				"day %d should match day %d", i, i+s.CycleLength())
		}
	})

	t.Run("restartable from any date", func(t *testing.T) {
		full, err := s.Schedule("B", plantTime(2026, 1, 5, 0, 0), 10)
		require.NoError(t, err)
		tail, err := s.Schedule("B", plantTime(2026, 1, 8, 0, 0), 7)
		require.NoError(t, err)

		for i, entry := range tail {
			assert.Equal(t, full[i+3].Slot, entry.Slot)
		}
	})

	t.Run("rejects non-positive horizon", func(t *testing.T) {
		_, err := s.Schedule("A", plantTime(2026, 1, 5, 0, 0), 0)
		assert.Error(t, err)
	})
}

func TestRotationSlot_ShiftType(t *testing.T) {
	tests := []struct {
		name     string
		slot     vo.RotationSlot
		working  bool
		expected vo.ShiftType
	}{
		{"morning maps to day", vo.RotationSlotMorning, true, vo.ShiftTypeDay},
		{"afternoon maps to day", vo.RotationSlotAfternoon, true, vo.ShiftTypeDay},
		{"night maps to night", vo.RotationSlotNight, true, vo.ShiftTypeNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.working, tt.slot.IsWorking())
			st, ok := tt.slot.ShiftType()
			require.True(t, ok)
			assert.Equal(t, tt.expected, st)
		})
	}

	t.Run("off day is not working", func(t *testing.T) {
		assert.False(t, vo.RotationSlotOff.IsWorking())
		_, ok := vo.RotationSlotOff.ShiftType()
		assert.False(t, ok)
	})
}
