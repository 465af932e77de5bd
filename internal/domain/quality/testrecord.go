package quality

import (
	"fmt"
	"time"
)

// TestRecord is one row of the append-only quality test log. The newest
// record per config is the baseline for both gate conditions.
type TestRecord struct {
	ID         uint
	MachineID  uint
	ConfigID   uint
	OperatorID uint
	TestDate   time.Time
	Approved   bool
	Notes      string
}

func NewTestRecord(machineID, configID, operatorID uint, testDate time.Time, approved bool, notes string) (*TestRecord, error) {
	if machineID == 0 {
		return nil, fmt.Errorf("machine ID is required")
	}
	if configID == 0 {
		return nil, fmt.Errorf("config ID is required")
	}
	if operatorID == 0 {
		return nil, fmt.Errorf("operator ID is required")
	}
	if testDate.IsZero() {
		return nil, fmt.Errorf("test date is required")
	}
	if len(notes) > 2000 {
		return nil, fmt.Errorf("notes exceed maximum length of 2000 characters")
	}

	return &TestRecord{
		MachineID:  machineID,
		ConfigID:   configID,
		OperatorID: operatorID,
		TestDate:   testDate,
		Approved:   approved,
		Notes:      notes,
	}, nil
}
