// Package oee computes Overall Equipment Effectiveness from shift records.
package oee

import (
	"fmt"
	"time"
)

// Metrics holds the three OEE factors and the composite score, each
// expressed as a percentage in [0, 100].
type Metrics struct {
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`

	RuntimeMinutes  int `json:"runtime_minutes"`
	DowntimeMinutes int `json:"downtime_minutes"`
	TotalProduction int `json:"total_production"`
	TotalTests      int `json:"total_tests"`
	ApprovedTests   int `json:"approved_tests"`
}

// Input is the raw shift data needed to compute OEE for one machine over
// one window.
type Input struct {
	RuntimeMinutes  int
	DowntimeMinutes int
	TotalProduction int
	// ProductionSpeed is the machine's ideal rate in units per hour.
	ProductionSpeed float64
	TotalTests      int
	ApprovedTests   int
}

// Calculate derives the OEE factors from raw shift counters.
//
// Availability = runtime / (runtime + downtime).
// Performance  = actual output / (ideal rate * runtime).
// Quality      = approved tests / total tests, or 100 when no tests ran.
//
// Each factor is clamped to [0, 100] before composing, so a machine
// briefly running above its ideal rate cannot push OEE past 100.
func Calculate(in Input) (Metrics, error) {
	if in.RuntimeMinutes < 0 || in.DowntimeMinutes < 0 {
		return Metrics{}, fmt.Errorf("runtime and downtime cannot be negative")
	}
	if in.TotalProduction < 0 {
		return Metrics{}, fmt.Errorf("total production cannot be negative")
	}
	if in.ProductionSpeed < 0 {
		return Metrics{}, fmt.Errorf("production speed cannot be negative")
	}
	if in.ApprovedTests > in.TotalTests {
		return Metrics{}, fmt.Errorf("approved tests cannot exceed total tests")
	}

	m := Metrics{
		RuntimeMinutes:  in.RuntimeMinutes,
		DowntimeMinutes: in.DowntimeMinutes,
		TotalProduction: in.TotalProduction,
		TotalTests:      in.TotalTests,
		ApprovedTests:   in.ApprovedTests,
	}

	plannedMinutes := in.RuntimeMinutes + in.DowntimeMinutes
	if plannedMinutes > 0 {
		m.Availability = clamp(float64(in.RuntimeMinutes) / float64(plannedMinutes) * 100)
	}

	idealOutput := in.ProductionSpeed * float64(in.RuntimeMinutes) / 60
	if idealOutput > 0 {
		m.Performance = clamp(float64(in.TotalProduction) / idealOutput * 100)
	}

	if in.TotalTests > 0 {
		m.Quality = clamp(float64(in.ApprovedTests) / float64(in.TotalTests) * 100)
	} else {
		m.Quality = 100
	}

	m.OEE = clamp(m.Availability * m.Performance * m.Quality / 10000)

	return m, nil
}

// MachineResult pairs a machine with its computed metrics for fleet views.
// Err is set when the machine's calculation failed; the rest of the fleet
// is unaffected.
type MachineResult struct {
	MachineID  uint      `json:"machine_id"`
	MachineSID string    `json:"machine_sid"`
	Metrics    *Metrics  `json:"metrics,omitempty"`
	Err        error     `json:"-"`
	ComputedAt time.Time `json:"computed_at"`
}

// FleetSummary aggregates per-machine results into a plant-level view.
type FleetSummary struct {
	Machines   []MachineResult `json:"machines"`
	AverageOEE float64         `json:"average_oee"`
	Computed   int             `json:"computed"`
	Failed     int             `json:"failed"`
}

// Summarize averages the OEE of the successfully computed machines.
func Summarize(results []MachineResult) FleetSummary {
	s := FleetSummary{Machines: results}
	var sum float64
	for _, r := range results {
		if r.Err != nil || r.Metrics == nil {
			s.Failed++
			continue
		}
		sum += r.Metrics.OEE
		s.Computed++
	}
	if s.Computed > 0 {
		s.AverageOEE = sum / float64(s.Computed)
	}
	return s
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
