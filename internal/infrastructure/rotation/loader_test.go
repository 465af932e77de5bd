package rotation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlan = `
reference_date: "2026-01-05"
cycle:
  - [morning, afternoon, night, off]
  - [morning, afternoon, night, off]
  - [off, morning, afternoon, night]
  - [off, morning, afternoon, night]
teams:
  A: 0
  B: 1
  C: 2
  D: 3
`

func TestParseSchedule(t *testing.T) {
	t.Run("ValidPlan", func(t *testing.T) {
		schedule, err := parseSchedule([]byte(validPlan))

		require.NoError(t, err)
		assert.Equal(t, 4, schedule.CycleLength())
		assert.True(t, schedule.HasTeam("A"))
		assert.True(t, schedule.HasTeam("D"))
		assert.False(t, schedule.HasTeam("E"))
	})

	t.Run("UnknownSlot", func(t *testing.T) {
		plan := `
reference_date: "2026-01-05"
cycle:
  - [morning, graveyard]
teams:
  A: 0
`
		_, err := parseSchedule([]byte(plan))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid rotation slot")
	})

	t.Run("RaggedRows", func(t *testing.T) {
		plan := `
reference_date: "2026-01-05"
cycle:
  - [morning, afternoon, night, off]
  - [morning, afternoon]
teams:
  A: 0
`
		_, err := parseSchedule([]byte(plan))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 4")
	})

	t.Run("BadReferenceDate", func(t *testing.T) {
		plan := `
reference_date: "05.01.2026"
cycle:
  - [morning, off]
teams:
  A: 0
`
		_, err := parseSchedule([]byte(plan))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid rotation reference date")
	})

	t.Run("PhaseOutOfRange", func(t *testing.T) {
		plan := `
reference_date: "2026-01-05"
cycle:
  - [morning, off]
teams:
  A: 5
`
		_, err := parseSchedule([]byte(plan))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})

	t.Run("NotYAML", func(t *testing.T) {
		_, err := parseSchedule([]byte("{{{"))
		assert.Error(t, err)
	})
}

func TestLoadSchedule(t *testing.T) {
	t.Run("LoadsFromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rotation.yaml")
		require.NoError(t, os.WriteFile(path, []byte(validPlan), 0o644))

		schedule, err := LoadSchedule(path)

		require.NoError(t, err)
		assert.Equal(t, 4, schedule.CycleLength())
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadSchedule(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read rotation file")
	})
}
