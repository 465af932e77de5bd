// Package biztime provides plant-timezone calculations. All storage and
// transport use UTC; the plant timezone only decides date boundaries, so
// shift attribution stays stable across server timezones.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default plant timezone.
	DefaultTimezone = "Europe/Warsaw"
)

var (
	plantLocation     *time.Location
	plantLocationOnce sync.Once
	initErr           error
)

// Init initializes the plant timezone. Should be called once at startup.
// If tz is empty, defaults to DefaultTimezone.
func Init(tz string) error {
	plantLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		plantLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the plant timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize plant timezone %q: %v", tz, err))
	}
}

// Location returns the plant timezone location, auto-initializing with the
// default if Init was never called.
func Location() *time.Location {
	if plantLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return plantLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// InPlant converts a time to the plant timezone.
func InPlant(t time.Time) time.Time {
	return t.In(Location())
}

// StartOfDayUTC returns the start of day (00:00:00) in plant timezone,
// converted to UTC for storage and queries.
func StartOfDayUTC(t time.Time) time.Time {
	plant := t.In(Location())
	startOfDay := time.Date(plant.Year(), plant.Month(), plant.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// EndOfDayUTC returns the end of day (23:59:59.999999999) in plant
// timezone, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	plant := t.In(Location())
	endOfDay := time.Date(plant.Year(), plant.Month(), plant.Day(), 23, 59, 59, 999999999, Location())
	return endOfDay.UTC()
}

// DateOf truncates a time to its plant-timezone calendar date, returned as
// plant-timezone midnight. Shift records key on this value.
func DateOf(t time.Time) time.Time {
	plant := t.In(Location())
	return time.Date(plant.Year(), plant.Month(), plant.Day(), 0, 0, 0, 0, Location())
}

// ParseDateInPlant parses a date string (YYYY-MM-DD) as plant-timezone
// midnight, then returns the UTC equivalent.
func ParseDateInPlant(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// FormatDate formats a time as a plant-timezone calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.In(Location()).Format("2006-01-02")
}
