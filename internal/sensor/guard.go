package sensor

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// Round takes one averaging round.
type Round interface {
	AverageOf(n int) (float64, error)
}

// Guard stops polling a sensor that keeps failing. After failures consecutive
// unavailable rounds it opens for openFor and reports ErrSensorUnavailable
// without touching the hardware, so a disconnected sensor does not spend
// n x echo-timeout of every tick. One trial round is let through afterwards.
type Guard struct {
	inner Round
	cb    *gobreaker.CircuitBreaker
}

// NewGuard wraps inner in a circuit breaker.
func NewGuard(inner Round, failures uint32, openFor time.Duration) *Guard {
	if failures == 0 {
		failures = 1
	}
	return &Guard{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "range-sensor",
			Timeout: openFor,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("sensor: breaker %s %s -> %s", name, from, to)
			},
		}),
	}
}

// AverageOf runs one round through the breaker.
func (g *Guard) AverageOf(n int) (float64, error) {
	res, err := g.cb.Execute(func() (interface{}, error) {
		d, err := g.inner.AverageOf(n)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, fmt.Errorf("%w: %w", ErrSensorUnavailable, err)
	}
	if err != nil {
		return 0, err
	}
	return res.(float64), nil
}

// State returns the breaker state ("closed", "half-open" or "open").
func (g *Guard) State() string {
	return g.cb.State().String()
}
