package logic

import "time"

// Default joystick thresholds for a 12-bit ADC centred around 2048.
const (
	AxisHighThreshold = 3500
	AxisLowThreshold  = 500
)

// Default settle windows.
const (
	AxisSettle   = 150 * time.Millisecond
	SwitchSettle = 300 * time.Millisecond
)

// Button detects rising edges on a polled digital input.
// It must be updated on every tick; a press shorter than one tick can be missed.
type Button struct {
	// Level observed on the previous tick
	lastLevel bool
	// Edges before this time are swallowed
	ignoreUntil time.Time
	settle      time.Duration
}

// NewButton creates a Button. A non-zero settle ignores further edges for
// that long after a reported press.
func NewButton(settle time.Duration) *Button {
	return &Button{settle: settle}
}

// Update records the current level and reports whether it is a new press.
// The stored level is updated unconditionally, even while settling.
func (b *Button) Update(level bool, now time.Time) bool {
	edge := level && !b.lastLevel
	b.lastLevel = level

	if !edge || now.Before(b.ignoreUntil) {
		return false
	}
	if b.settle > 0 {
		b.ignoreUntil = now.Add(b.settle)
	}
	return true
}

// Level returns the level seen on the last update.
func (b *Button) Level() bool {
	return b.lastLevel
}

// Axis turns raw joystick samples into Increase/Decrease steps.
// Holding the stick repeats the step once per settle window.
type Axis struct {
	high, low   uint16
	settle      time.Duration
	ignoreUntil time.Time
}

// NewAxis creates an Axis with the default thresholds.
func NewAxis(settle time.Duration) *Axis {
	return &Axis{
		high:   AxisHighThreshold,
		low:    AxisLowThreshold,
		settle: settle,
	}
}

// Update classifies raw and starts the settle window on a deflection.
// Samples inside the settle window read as Neutral.
func (a *Axis) Update(raw uint16, now time.Time) Direction {
	if now.Before(a.ignoreUntil) {
		return Neutral
	}

	var d Direction
	switch {
	case raw > a.high:
		d = Increase
	case raw < a.low:
		d = Decrease
	default:
		return Neutral
	}

	a.ignoreUntil = now.Add(a.settle)
	return d
}
