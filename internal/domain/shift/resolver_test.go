package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
)

// plantTime builds a wall-clock time in the plant timezone so tests hold
// regardless of which timezone the suite runs under.
func plantTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, biztime.Location())
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(7, 19, 5*time.Minute)
	require.NoError(t, err)
	return r
}

func TestNewResolver_Validation(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		grace   time.Duration
		wantErr bool
	}{
		{"valid boundaries", 7, 19, 5 * time.Minute, false},
		{"start after end", 19, 7, 5 * time.Minute, true},
		{"start equals end", 7, 7, 5 * time.Minute, true},
		{"hour out of range", -1, 19, 5 * time.Minute, true},
		{"hour above 23", 7, 24, 5 * time.Minute, true},
		{"zero grace", 7, 19, 0, true},
		{"grace above one hour", 7, 19, 2 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.start, tt.end, tt.grace)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolver_DetermineShiftType(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name     string
		at       time.Time
		expected vo.ShiftType
	}{
		{"day shift start boundary", plantTime(2026, 3, 10, 7, 0), vo.ShiftTypeDay},
		{"mid morning", plantTime(2026, 3, 10, 10, 30), vo.ShiftTypeDay},
		{"last day minute", plantTime(2026, 3, 10, 18, 59), vo.ShiftTypeDay},
		{"night shift start boundary", plantTime(2026, 3, 10, 19, 0), vo.ShiftTypeNight},
		{"late evening", plantTime(2026, 3, 10, 23, 0), vo.ShiftTypeNight},
		{"past midnight", plantTime(2026, 3, 11, 2, 0), vo.ShiftTypeNight},
		{"just before day start", plantTime(2026, 3, 11, 6, 59), vo.ShiftTypeNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.DetermineShiftType(tt.at))
		})
	}
}

func TestResolver_ShiftDate(t *testing.T) {
	r := newTestResolver(t)

	t.Run("day shift keys on its own date", func(t *testing.T) {
		date := r.ShiftDate(plantTime(2026, 3, 10, 12, 0))
		assert.True(t, date.Equal(plantTime(2026, 3, 10, 0, 0)))
	})

	t.Run("night shift before midnight keys on its start date", func(t *testing.T) {
		date := r.ShiftDate(plantTime(2026, 3, 10, 22, 0))
		assert.True(t, date.Equal(plantTime(2026, 3, 10, 0, 0)))
	})

	t.Run("night shift after midnight keys on previous date", func(t *testing.T) {
		date := r.ShiftDate(plantTime(2026, 3, 11, 3, 0))
		assert.True(t, date.Equal(plantTime(2026, 3, 10, 0, 0)))
	})
}

func TestResolver_IsTransitionWindow(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name     string
		at       time.Time
		expected bool
	}{
		{"exactly at day boundary", plantTime(2026, 3, 10, 7, 0), true},
		{"inside morning window", plantTime(2026, 3, 10, 7, 4), true},
		{"just past morning window", plantTime(2026, 3, 10, 7, 5), false},
		{"exactly at night boundary", plantTime(2026, 3, 10, 19, 0), true},
		{"inside evening window", plantTime(2026, 3, 10, 19, 4), true},
		{"just past evening window", plantTime(2026, 3, 10, 19, 5), false},
		{"mid shift", plantTime(2026, 3, 10, 13, 0), false},
		{"just before boundary", plantTime(2026, 3, 10, 6, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.IsTransitionWindow(tt.at))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := newTestResolver(t)

	openRecord := func(t *testing.T, shiftDate time.Time, shiftType vo.ShiftType) *Record {
		t.Helper()
		rec, err := NewRecord(1, 2, shiftDate, shiftType, shiftDate, 1000)
		require.NoError(t, err)
		return rec
	}

	t.Run("no open record creates new", func(t *testing.T) {
		assert.Equal(t, DecisionCreateNew, r.Resolve(nil, plantTime(2026, 3, 10, 10, 0)))
	})

	t.Run("matching type and date keeps current", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 10, 0, 0), vo.ShiftTypeDay)
		assert.Equal(t, DecisionKeepCurrent, r.Resolve(rec, plantTime(2026, 3, 10, 14, 0)))
	})

	t.Run("type change inside window rolls over", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 10, 0, 0), vo.ShiftTypeDay)
		assert.Equal(t, DecisionRollover, r.Resolve(rec, plantTime(2026, 3, 10, 19, 3)))
	})

	t.Run("type change outside window keeps current", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 10, 0, 0), vo.ShiftTypeDay)
		assert.Equal(t, DecisionKeepCurrent, r.Resolve(rec, plantTime(2026, 3, 10, 19, 20)))
	})

	t.Run("same type but stale date rolls over", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 9, 0, 0), vo.ShiftTypeDay)
		assert.Equal(t, DecisionRollover, r.Resolve(rec, plantTime(2026, 3, 10, 10, 0)))
	})

	t.Run("night shift crossing midnight keeps current", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 10, 0, 0), vo.ShiftTypeNight)
		assert.Equal(t, DecisionKeepCurrent, r.Resolve(rec, plantTime(2026, 3, 11, 2, 0)))
	})

	t.Run("repeated resolve inside window is stable", func(t *testing.T) {
		rec := openRecord(t, plantTime(2026, 3, 10, 0, 0), vo.ShiftTypeDay)
		first := r.Resolve(rec, plantTime(2026, 3, 10, 19, 1))
		second := r.Resolve(rec, plantTime(2026, 3, 10, 19, 2))
		assert.Equal(t, DecisionRollover, first)
		assert.Equal(t, first, second)
	})
}

func TestResolver_ShiftStartEnd(t *testing.T) {
	r := newTestResolver(t)

	t.Run("day shift spans boundary hours", func(t *testing.T) {
		at := plantTime(2026, 3, 10, 12, 0)
		assert.True(t, r.ShiftStart(at).Equal(plantTime(2026, 3, 10, 7, 0)))
		assert.True(t, r.ShiftEnd(at).Equal(plantTime(2026, 3, 10, 19, 0)))
	})

	t.Run("night shift spans midnight", func(t *testing.T) {
		at := plantTime(2026, 3, 10, 23, 0)
		assert.True(t, r.ShiftStart(at).Equal(plantTime(2026, 3, 10, 19, 0)))
		assert.True(t, r.ShiftEnd(at).Equal(plantTime(2026, 3, 11, 7, 0)))
	})

	t.Run("night shift after midnight anchors on previous day", func(t *testing.T) {
		at := plantTime(2026, 3, 11, 3, 0)
		assert.True(t, r.ShiftStart(at).Equal(plantTime(2026, 3, 10, 19, 0)))
		assert.True(t, r.ShiftEnd(at).Equal(plantTime(2026, 3, 11, 7, 0)))
	})
}
