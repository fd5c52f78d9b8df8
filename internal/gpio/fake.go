package gpio

import (
	"errors"
	"time"
)

// FakeInput is a test double that returns scripted levels.
type FakeInput struct {
	// Levels contains scripted values to return.
	// Each call to Value() consumes the next level.
	Levels []bool

	// index tracks current position in Levels
	index int

	// ReadError, if set, will be returned by Value()
	ReadError error
}

// NewFakeInput creates a FakeInput with the given levels.
func NewFakeInput(levels ...bool) *FakeInput {
	return &FakeInput{Levels: levels}
}

// Value returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakeInput) Value() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}
	return level, nil
}

// FakeAnalog is a test double that returns scripted ADC samples.
type FakeAnalog struct {
	Samples   []uint16
	index     int
	ReadError error
}

// NewFakeAnalog creates a FakeAnalog with the given samples.
func NewFakeAnalog(samples ...uint16) *FakeAnalog {
	return &FakeAnalog{Samples: samples}
}

// Read returns the next scripted sample, repeating the last one.
func (f *FakeAnalog) Read() (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

// FakeOutput records every level written to it.
type FakeOutput struct {
	// Writes contains all levels written, in order.
	Writes []bool

	// WriteError, if set, will be returned by Set.
	WriteError error
}

// Set records the level.
func (f *FakeOutput) Set(level bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, level)
	return nil
}

// Level returns the last written level (false if never written).
func (f *FakeOutput) Level() bool {
	if len(f.Writes) == 0 {
		return false
	}
	return f.Writes[len(f.Writes)-1]
}

// Pulses counts low-to-high transitions.
func (f *FakeOutput) Pulses() int {
	n := 0
	prev := false
	for _, w := range f.Writes {
		if w && !prev {
			n++
		}
		prev = w
	}
	return n
}

// FakeClock is a manually advanced clock. Each Now() call advances it by
// Step so busy-wait loops make progress. Not safe for concurrent use.
type FakeClock struct {
	T    time.Time
	Step time.Duration
}

// Now advances the clock by Step and returns the new time.
func (c *FakeClock) Now() time.Time {
	c.T = c.T.Add(c.Step)
	return c.T
}

// Peek returns the current time without advancing.
func (c *FakeClock) Peek() time.Time {
	return c.T
}

// Sleep advances the clock by d.
func (c *FakeClock) Sleep(d time.Duration) {
	c.T = c.T.Add(d)
}

// Echo simulates an ultrasonic rangefinder: after each trigger pulse the echo
// line goes high for the next scripted width. A zero width means no echo.
type Echo struct {
	// Clock used to place the echo pulse in time
	Clock *FakeClock
	// Delay between the trigger falling edge and the echo rising edge
	Delay time.Duration
	// Widths contains the echo width for each successive trigger.
	// The last width repeats once exhausted.
	Widths []time.Duration

	// ReadError, if set, will be returned by Value()
	ReadError error

	index     int
	width     time.Duration
	fired     time.Time
	armed     bool
	trigLevel bool
	Triggers  int
}

// Trigger returns the Output that fires the simulated sensor on its falling edge.
func (e *Echo) Trigger() Output {
	return echoTrigger{e: e}
}

type echoTrigger struct {
	e *Echo
}

func (t echoTrigger) Set(level bool) error {
	e := t.e
	if e.trigLevel && !level {
		e.fire()
	}
	e.trigLevel = level
	return nil
}

func (e *Echo) fire() {
	e.Triggers++
	e.armed = true
	e.fired = e.Clock.Peek()
	e.width = 0
	if len(e.Widths) > 0 {
		e.width = e.Widths[e.index]
		if e.index < len(e.Widths)-1 {
			e.index++
		}
	}
}

// Value reports whether the echo pulse is high at the current clock time.
func (e *Echo) Value() (bool, error) {
	if e.ReadError != nil {
		return false, e.ReadError
	}
	if !e.armed || e.width == 0 {
		return false, nil
	}
	now := e.Clock.Peek()
	start := e.fired.Add(e.Delay)
	return !now.Before(start) && now.Before(start.Add(e.width)), nil
}
