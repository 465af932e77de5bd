package valueobjects

import "fmt"

type ShiftType string

const (
	ShiftTypeDay   ShiftType = "day"
	ShiftTypeNight ShiftType = "night"
)

var validShiftTypes = map[ShiftType]bool{
	ShiftTypeDay:   true,
	ShiftTypeNight: true,
}

func (s ShiftType) String() string {
	return string(s)
}

func (s ShiftType) IsValid() bool {
	return validShiftTypes[s]
}

func (s ShiftType) IsDay() bool {
	return s == ShiftTypeDay
}

func (s ShiftType) IsNight() bool {
	return s == ShiftTypeNight
}

func NewShiftType(str string) (ShiftType, error) {
	s := ShiftType(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid shift type: %s", str)
	}
	return s, nil
}
