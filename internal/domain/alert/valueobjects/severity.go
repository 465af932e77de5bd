package valueobjects

import "fmt"

// Severity classifies how urgent a production alert is.
type Severity struct {
	value string
}

const (
	severityMedium = "medium"
	severityHigh   = "high"
)

var validSeverities = map[string]bool{
	severityMedium: true,
	severityHigh:   true,
}

func NewSeverity(value string) (Severity, error) {
	if !validSeverities[value] {
		return Severity{}, fmt.Errorf("invalid severity: %s", value)
	}
	return Severity{value: value}, nil
}

func SeverityMedium() Severity { return Severity{value: severityMedium} }
func SeverityHigh() Severity   { return Severity{value: severityHigh} }

func (s Severity) String() string { return s.value }
func (s Severity) IsHigh() bool   { return s.value == severityHigh }

func (s Severity) Equals(other Severity) bool {
	return s.value == other.value
}
