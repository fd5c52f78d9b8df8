// Package sensor measures bin clearance with an HC-SR04 style ultrasonic
// rangefinder: one trigger pulse out, one echo pulse back whose width is the
// round-trip time of flight.
package sensor

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
)

var (
	// ErrSensorTimeout means the echo line did not complete a pulse in time.
	ErrSensorTimeout = errors.New("sensor: no echo within timeout")

	// ErrSensorUnavailable means an averaging round produced no valid sample.
	ErrSensorUnavailable = errors.New("sensor: unavailable")
)

// DefaultEchoTimeout bounds one measurement. A 120cm bin gives an echo of
// about 7ms; anything longer is a missing or disconnected sensor.
const DefaultEchoTimeout = 30 * time.Millisecond

// Round-trip microseconds per centimetre at room temperature (datasheet value).
const microsecondsPerCm = 58.0

// Trigger pulse timing.
const (
	triggerSettle = 2 * time.Microsecond
	triggerPulse  = 10 * time.Microsecond
)

// Sampler takes single distance readings.
type Sampler struct {
	trig    gpio.Output
	echo    gpio.Input
	timeout time.Duration

	// Now and Sleep default to the time package; tests replace them.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewSampler creates a Sampler on the given trigger and echo lines.
// A timeout <= 0 uses DefaultEchoTimeout.
func NewSampler(trig gpio.Output, echo gpio.Input, timeout time.Duration) *Sampler {
	if timeout <= 0 {
		timeout = DefaultEchoTimeout
	}
	return &Sampler{
		trig:    trig,
		echo:    echo,
		timeout: timeout,
		Now:     time.Now,
		Sleep:   time.Sleep,
	}
}

// SampleOnce fires the trigger and returns the measured distance in cm.
// It returns ErrSensorTimeout if the echo does not rise and fall within the
// timeout, instead of waiting forever.
func (s *Sampler) SampleOnce() (float64, error) {
	if err := s.pulse(); err != nil {
		return 0, fmt.Errorf("trigger: %w", err)
	}

	deadline := s.Now().Add(s.timeout)

	start, err := s.waitFor(true, deadline)
	if err != nil {
		return 0, err
	}
	end, err := s.waitFor(false, deadline)
	if err != nil {
		return 0, err
	}

	return float64(end.Sub(start).Microseconds()) / microsecondsPerCm, nil
}

func (s *Sampler) pulse() error {
	if err := s.trig.Set(false); err != nil {
		return err
	}
	s.Sleep(triggerSettle)
	if err := s.trig.Set(true); err != nil {
		return err
	}
	s.Sleep(triggerPulse)
	return s.trig.Set(false)
}

// waitFor polls the echo line until it reaches level and returns the time
// it was observed.
func (s *Sampler) waitFor(level bool, deadline time.Time) (time.Time, error) {
	for {
		v, err := s.echo.Value()
		if err != nil {
			return time.Time{}, fmt.Errorf("echo: %w", err)
		}
		t := s.Now()
		if v == level {
			return t, nil
		}
		if t.After(deadline) {
			return time.Time{}, ErrSensorTimeout
		}
	}
}
