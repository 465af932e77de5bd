// Package rotation loads the plant rotation plan from a YAML file.
package rotation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	vo "github.com/shopfloor-io/shopfloor/internal/domain/shift/valueobjects"
	"github.com/shopfloor-io/shopfloor/internal/shared/biztime"
)

// rotationFile mirrors the YAML layout of the rotation plan:
//
//	reference_date: "2026-01-05"
//	cycle:
//	  - [day, day, night, off]
//	  - ...
//	teams:
//	  A: 0
//	  B: 1
type rotationFile struct {
	ReferenceDate string         `yaml:"reference_date"`
	Cycle         [][]string     `yaml:"cycle"`
	Teams         map[string]int `yaml:"teams"`
}

// LoadSchedule reads and validates a rotation plan from path.
func LoadSchedule(path string) (*shift.RotationSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rotation file %s: %w", path, err)
	}

	return parseSchedule(data)
}

func parseSchedule(data []byte) (*shift.RotationSchedule, error) {
	var file rotationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rotation file: %w", err)
	}

	referenceDate, err := biztime.ParseDateInPlant(file.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid rotation reference date %q: %w", file.ReferenceDate, err)
	}

	table := make([][]vo.RotationSlot, 0, len(file.Cycle))
	for i, row := range file.Cycle {
		slots := make([]vo.RotationSlot, 0, len(row))
		for _, raw := range row {
			slot, err := vo.NewRotationSlot(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid rotation slot in cycle row %d: %w", i, err)
			}
			slots = append(slots, slot)
		}
		table = append(table, slots)
	}

	schedule, err := shift.NewRotationSchedule(referenceDate, table, file.Teams)
	if err != nil {
		return nil, fmt.Errorf("invalid rotation plan: %w", err)
	}

	return schedule, nil
}
