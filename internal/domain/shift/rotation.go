package shift

import (
	"fmt"
	"time"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
)

// RotationSchedule is a pure periodic function mapping (team, date) to a
// rotation slot. The cycle table has one row per day of the cycle and one
// column per phase; a team's phase offset selects its column. There is no
// per-instance mutable state, so lookups are trivially parallelizable.
type RotationSchedule struct {
	cycleLength   int
	phaseCount    int
	referenceDate time.Time
	table         [][]vo.RotationSlot
	teamPhases    map[string]int
}

// ScheduleEntry is one (date, slot) pair of a team's projected schedule.
type ScheduleEntry struct {
	Date time.Time
	Slot vo.RotationSlot
}

// NewRotationSchedule validates the cycle table. Every row must cover all
// phases, and the reference date anchors day zero of the cycle.
func NewRotationSchedule(referenceDate time.Time, table [][]vo.RotationSlot, teamPhases map[string]int) (*RotationSchedule, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("rotation table cannot be empty")
	}
	if referenceDate.IsZero() {
		return nil, fmt.Errorf("reference date is required")
	}
	if len(teamPhases) == 0 {
		return nil, fmt.Errorf("at least one team phase is required")
	}

	phaseCount := len(table[0])
	if phaseCount == 0 {
		return nil, fmt.Errorf("rotation table rows cannot be empty")
	}
	for i, row := range table {
		if len(row) != phaseCount {
			return nil, fmt.Errorf("rotation table row %d has %d slots, expected %d", i, len(row), phaseCount)
		}
		for j, slot := range row {
			if !slot.IsValid() {
				return nil, fmt.Errorf("invalid rotation slot %q at row %d, phase %d", slot, i, j)
			}
		}
	}
	for team, phase := range teamPhases {
		if team == "" {
			return nil, fmt.Errorf("team code cannot be empty")
		}
		if phase < 0 || phase >= phaseCount {
			return nil, fmt.Errorf("team %s phase offset %d out of range [0,%d)", team, phase, phaseCount)
		}
	}

	return &RotationSchedule{
		cycleLength:   len(table),
		phaseCount:    phaseCount,
		referenceDate: biztime.DateOf(referenceDate),
		table:         table,
		teamPhases:    teamPhases,
	}, nil
}

func (s *RotationSchedule) CycleLength() int {
	return s.cycleLength
}

func (s *RotationSchedule) Teams() []string {
	teams := make([]string, 0, len(s.teamPhases))
	for team := range s.teamPhases {
		teams = append(teams, team)
	}
	return teams
}

func (s *RotationSchedule) HasTeam(team string) bool {
	_, ok := s.teamPhases[team]
	return ok
}

// SlotFor returns the slot the team occupies on the given date:
// table[(date - referenceDate) mod cycleLength][teamPhase].
func (s *RotationSchedule) SlotFor(team string, date time.Time) (vo.RotationSlot, error) {
	phase, ok := s.teamPhases[team]
	if !ok {
		return "", fmt.Errorf("unknown team code: %s", team)
	}

	days := daysBetween(s.referenceDate, biztime.DateOf(date))
	idx := days % s.cycleLength
	if idx < 0 {
		idx += s.cycleLength
	}

	return s.table[idx][phase], nil
}

// Schedule projects the team's slots for the given number of days starting
// at from. Each entry is an independent application of SlotFor, so the
// sequence is restartable from any date.
func (s *RotationSchedule) Schedule(team string, from time.Time, days int) ([]ScheduleEntry, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive")
	}
	if !s.HasTeam(team) {
		return nil, fmt.Errorf("unknown team code: %s", team)
	}

	start := biztime.DateOf(from)
	entries := make([]ScheduleEntry, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		slot, err := s.SlotFor(team, date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ScheduleEntry{Date: date, Slot: slot})
	}

	return entries, nil
}

// daysBetween counts calendar days from a to b. Both are re-anchored to
// UTC midnight so the count stays exact across DST transitions, where a
// plant-local day is 23 or 25 hours long.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
