package quality

import "time"

// ReasonCode tags which gate condition tripped.
type ReasonCode string

const (
	ReasonFrequency       ReasonCode = "FREQUENCY"
	ReasonProductsPerTest ReasonCode = "PRODUCTS_PER_TEST"
)

// Reason describes one breached condition on one gate config.
type Reason struct {
	ConfigID        uint
	ConfigSID       string
	TestName        string
	Code            ReasonCode
	Measured        float64
	Threshold       float64
	ExceedBy        float64
	BlockProduction bool
}

// GateStatus is the evaluation result for one machine.
type GateStatus struct {
	Pending bool
	Reasons []Reason
}

func (s GateStatus) IsOK() bool {
	return !s.Pending
}

// BlocksProduction reports whether any pending config demands a production
// block. When configs disagree, any single blocking config blocks.
func (s GateStatus) BlocksProduction() bool {
	for _, r := range s.Reasons {
		if r.BlockProduction {
			return true
		}
	}
	return false
}

// BlockingReason returns the first blocking reason, if any.
func (s GateStatus) BlockingReason() (Reason, bool) {
	for _, r := range s.Reasons {
		if r.BlockProduction {
			return r, true
		}
	}
	return Reason{}, false
}

// ConfigState is the externally fetched state one gate config is evaluated
// against: the baseline test (nil when no test was ever recorded) and the
// delta sum recorded after that baseline. Using the delta sum rather than
// the shift record's cumulative counter makes the count survive shift
// rollovers, where totalProduction resets per record.
type ConfigState struct {
	Config             *GateConfig
	LastTestDate       *time.Time
	UnitsSinceLastTest int
}

// Evaluate runs both gate conditions for every active config and returns
// the machine's gate status. Each breached condition contributes its own
// reason; conditions on different configs never affect each other.
func Evaluate(states []ConfigState, now time.Time) GateStatus {
	status := GateStatus{Reasons: []Reason{}}

	for _, st := range states {
		cfg := st.Config
		if cfg == nil || !cfg.IsActive() {
			continue
		}

		if cfg.TestFrequencyHours() > 0 && st.LastTestDate != nil {
			elapsed := now.Sub(*st.LastTestDate).Hours()
			if elapsed >= cfg.TestFrequencyHours() {
				status.Reasons = append(status.Reasons, Reason{
					ConfigID:        cfg.ID(),
					ConfigSID:       cfg.SID(),
					TestName:        cfg.TestName(),
					Code:            ReasonFrequency,
					Measured:        elapsed,
					Threshold:       cfg.TestFrequencyHours(),
					ExceedBy:        elapsed - cfg.TestFrequencyHours(),
					BlockProduction: cfg.BlockProduction(),
				})
			}
		}

		if cfg.ProductsPerTest() > 0 && st.UnitsSinceLastTest >= cfg.ProductsPerTest() {
			status.Reasons = append(status.Reasons, Reason{
				ConfigID:        cfg.ID(),
				ConfigSID:       cfg.SID(),
				TestName:        cfg.TestName(),
				Code:            ReasonProductsPerTest,
				Measured:        float64(st.UnitsSinceLastTest),
				Threshold:       float64(cfg.ProductsPerTest()),
				ExceedBy:        float64(st.UnitsSinceLastTest - cfg.ProductsPerTest()),
				BlockProduction: cfg.BlockProduction(),
			})
		}
	}

	status.Pending = len(status.Reasons) > 0
	return status
}
