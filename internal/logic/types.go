// Package logic contains the pure sensing-and-state rules of the bin monitor.
// This package has NO external dependencies (no GPIO, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

// Tier is the alert level derived from the bin occupancy.
type Tier string

const (
	TierLow    Tier = "LOW"
	TierMedium Tier = "MEDIUM"
	TierHigh   Tier = "HIGH"
)

// Direction is the debounced reading of one joystick axis.
type Direction int

const (
	Neutral Direction = iota
	Increase
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "INCREASE"
	case Decrease:
		return "DECREASE"
	default:
		return "NEUTRAL"
	}
}

// Section identifies one of the mutually exclusive display views.
type Section int

const (
	SectionMain Section = iota
	SectionGraphs
	SectionTrends
	SectionNightMode
)

// SectionCount is the number of sections in the extended layout.
const SectionCount = 4

func (s Section) String() string {
	switch s {
	case SectionMain:
		return "MAIN"
	case SectionGraphs:
		return "GRAPHS"
	case SectionTrends:
		return "TRENDS"
	case SectionNightMode:
		return "NIGHT_MODE"
	default:
		return "UNKNOWN"
	}
}
