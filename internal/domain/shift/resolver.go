package shift

import (
	"fmt"
	"time"

	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
)

// Decision is the resolver's verdict on an open shift record.
type Decision int

const (
	// DecisionKeepCurrent keeps writing into the open record.
	DecisionKeepCurrent Decision = iota
	// DecisionCreateNew opens a record where none exists.
	DecisionCreateNew
	// DecisionRollover archives the open record and opens a fresh one.
	DecisionRollover
)

func (d Decision) String() string {
	switch d {
	case DecisionKeepCurrent:
		return "keep_current"
	case DecisionCreateNew:
		return "create_new"
	case DecisionRollover:
		return "rollover"
	default:
		return "unknown"
	}
}

// Resolver decides which shift a timestamp belongs to and whether an open
// record should roll over. All hour arithmetic happens in plant timezone.
type Resolver struct {
	dayStartHour int
	dayEndHour   int
	grace        time.Duration
}

func NewResolver(dayStartHour, dayEndHour int, grace time.Duration) (*Resolver, error) {
	if dayStartHour < 0 || dayStartHour > 23 || dayEndHour < 0 || dayEndHour > 23 {
		return nil, fmt.Errorf("shift boundary hours must be within 0-23")
	}
	if dayStartHour >= dayEndHour {
		return nil, fmt.Errorf("day shift must start before it ends (%d >= %d)", dayStartHour, dayEndHour)
	}
	if grace <= 0 {
		return nil, fmt.Errorf("transition grace must be positive")
	}
	if grace > time.Hour {
		return nil, fmt.Errorf("transition grace must not exceed one hour")
	}

	return &Resolver{
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
		grace:        grace,
	}, nil
}

// DetermineShiftType returns DAY for [dayStart, dayEnd) plant hours and
// NIGHT otherwise.
func (r *Resolver) DetermineShiftType(t time.Time) vo.ShiftType {
	hour := biztime.InPlant(t).Hour()
	if hour >= r.dayStartHour && hour < r.dayEndHour {
		return vo.ShiftTypeDay
	}
	return vo.ShiftTypeNight
}

// ShiftDate returns the plant calendar date a shift containing t is keyed
// by. Night hours before the day boundary belong to the night shift that
// started the previous day.
func (r *Resolver) ShiftDate(t time.Time) time.Time {
	plant := biztime.InPlant(t)
	if plant.Hour() < r.dayStartHour {
		return biztime.DateOf(plant.AddDate(0, 0, -1))
	}
	return biztime.DateOf(plant)
}

// ShiftStart returns the nominal start timestamp of the shift containing t.
func (r *Resolver) ShiftStart(t time.Time) time.Time {
	date := r.ShiftDate(t)
	if r.DetermineShiftType(t).IsDay() {
		return date.Add(time.Duration(r.dayStartHour) * time.Hour)
	}
	return date.Add(time.Duration(r.dayEndHour) * time.Hour)
}

// ShiftEnd returns the nominal end timestamp of the shift containing t.
func (r *Resolver) ShiftEnd(t time.Time) time.Time {
	start := r.ShiftStart(t)
	if r.DetermineShiftType(t).IsDay() {
		return start.Add(time.Duration(r.dayEndHour-r.dayStartHour) * time.Hour)
	}
	return start.Add(time.Duration(24-r.dayEndHour+r.dayStartHour) * time.Hour)
}

// IsTransitionWindow reports whether t falls in the short grace window just
// after a shift boundary. Rollovers are only honored inside this window to
// suppress spurious resets from clock skew or duplicate calls.
func (r *Resolver) IsTransitionWindow(t time.Time) bool {
	plant := biztime.InPlant(t)
	for _, boundaryHour := range []int{r.dayStartHour, r.dayEndHour} {
		boundary := time.Date(plant.Year(), plant.Month(), plant.Day(), boundaryHour, 0, 0, 0, plant.Location())
		if !plant.Before(boundary) && plant.Sub(boundary) < r.grace {
			return true
		}
	}
	return false
}

// Resolve decides what to do with the open record (nil when none exists)
// for a production event arriving at now:
//
//	NO_SHIFT                       -> create new
//	same type, same shift date     -> keep current
//	same type, stale shift date    -> rollover (a full cycle elapsed; the
//	                                  record missed its batch archival)
//	different type, in window      -> rollover
//	different type, outside window -> keep current, so requests arriving
//	                                  slightly after the nominal boundary
//	                                  cannot reset the running counters
func (r *Resolver) Resolve(open *Record, now time.Time) Decision {
	if open == nil {
		return DecisionCreateNew
	}

	currentType := r.DetermineShiftType(now)
	currentDate := r.ShiftDate(now)

	if open.ShiftType() == currentType {
		if open.ShiftDate().Equal(currentDate) {
			return DecisionKeepCurrent
		}
		return DecisionRollover
	}

	if r.IsTransitionWindow(now) {
		return DecisionRollover
	}

	return DecisionKeepCurrent
}
