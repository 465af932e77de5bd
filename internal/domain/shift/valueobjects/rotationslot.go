package valueobjects

import "fmt"

// RotationSlot is the slot a rotating team occupies on a given day.
type RotationSlot string

const (
	RotationSlotMorning   RotationSlot = "morning"
	RotationSlotAfternoon RotationSlot = "afternoon"
	RotationSlotNight     RotationSlot = "night"
	RotationSlotOff       RotationSlot = "off"
)

var validRotationSlots = map[RotationSlot]bool{
	RotationSlotMorning:   true,
	RotationSlotAfternoon: true,
	RotationSlotNight:     true,
	RotationSlotOff:       true,
}

func (s RotationSlot) String() string {
	return string(s)
}

func (s RotationSlot) IsValid() bool {
	return validRotationSlots[s]
}

func (s RotationSlot) IsWorking() bool {
	return s.IsValid() && s != RotationSlotOff
}

// ShiftType maps a working rotation slot onto the day/night attribution
// used by shift records. Morning and afternoon both fall inside day-shift
// hours; the off slot has no shift type.
func (s RotationSlot) ShiftType() (ShiftType, bool) {
	switch s {
	case RotationSlotMorning, RotationSlotAfternoon:
		return ShiftTypeDay, true
	case RotationSlotNight:
		return ShiftTypeNight, true
	default:
		return "", false
	}
}

func NewRotationSlot(str string) (RotationSlot, error) {
	s := RotationSlot(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid rotation slot: %s", str)
	}
	return s, nil
}
