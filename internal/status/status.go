// Package status provides a thread-safe status tracker for the bin-monitor daemon.
// It holds the latest state published by the tick loop for read-only consumers.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/bin-monitor/internal/logic"
)

// SensorHealth describes recent rangefinder behaviour.
type SensorHealth struct {
	ConsecutiveFailures int
	LastError           string
	LastReading         time.Time
	Breaker             string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs        int64
	Samples       int
	EchoTimeoutMs int64
	Profile       string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	State     logic.SystemState
	Trend     []float64
	Sensor    SensorHealth
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     logic.NewSystemState(),
			Trend:     make([]float64, logic.TrendSize),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update stores the state, trend and sensor health.
// Called from the tick loop after every tick.
func (t *Tracker) Update(state logic.SystemState, trend []float64, health SensorHealth) {
	cp := make([]float64, len(trend))
	copy(cp, trend)

	t.mu.Lock()
	t.snap.State = state
	t.snap.Trend = cp
	t.snap.Sensor = health
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Trend = append([]float64(nil), t.snap.Trend...)
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
