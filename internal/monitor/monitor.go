// Package monitor runs one control tick of the bin monitor: it reads the
// inputs, applies the resulting transitions to the system state, measures
// the fill level when powered and drives the LED, buzzer and display.
package monitor

import (
	"log"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/logic"
	"github.com/sweeney/bin-monitor/internal/sensor"
)

// Config selects the UI profile and tick tuning.
type Config struct {
	Profile      logic.Profile
	Samples      int
	AxisSettle   time.Duration
	SwitchSettle time.Duration
}

// DefaultConfig returns the extended profile with the standard timings.
func DefaultConfig() Config {
	return Config{
		Profile:      logic.ProfileExtended,
		Samples:      sensor.DefaultSamples,
		AxisSettle:   logic.AxisSettle,
		SwitchSettle: logic.SwitchSettle,
	}
}

// Inputs are the polled controls. A nil input reads as released or centred.
type Inputs struct {
	Power  gpio.Input
	Night  gpio.Input
	Switch gpio.Input
	X      gpio.Analog
	Y      gpio.Analog
}

// Distance produces one averaged distance per call.
type Distance interface {
	AverageOf(n int) (float64, error)
}

// Indicator shows the alert tier.
type Indicator interface {
	Show(t logic.Tier, brightness int) error
	Off() error
}

// Alarm sounds the audible alert.
type Alarm interface {
	Sound() error
}

// Display renders the state once per tick.
type Display interface {
	Render(s logic.SystemState, trend []float64) error
}

// Outputs are the collaborators driven after each tick. Any may be nil.
type Outputs struct {
	Indicator Indicator
	Alarm     Alarm
	Display   Display
}

// Report summarizes the sensing part of a tick.
type Report struct {
	// Measured is true when a new distance was recorded this tick.
	Measured bool
	// Err is the sensing error, if any. The previous reading is kept.
	Err   error
	Tier  logic.Tier
	Alarm bool
}

// Health tracks recent sensing outcomes.
type Health struct {
	ConsecutiveFailures int
	LastError           error
	LastReading         time.Time
}

// Monitor owns the system state and every stateful input handler.
// It is driven from a single goroutine and is not safe for concurrent use.
type Monitor struct {
	cfg      Config
	in       Inputs
	distance Distance
	out      Outputs

	state  logic.SystemState
	trend  logic.Trend
	nav    *logic.Navigator
	power  *logic.Button
	night  *logic.Button
	sw     *logic.Button
	x      *logic.Axis
	y      *logic.Axis
	health Health
}

// New creates a Monitor in the power-on default state.
func New(cfg Config, in Inputs, distance Distance, out Outputs) *Monitor {
	if cfg.Samples < 1 {
		cfg.Samples = 1
	}
	if cfg.Profile.Sections == 0 {
		cfg.Profile = logic.ProfileExtended
	}
	return &Monitor{
		cfg:      cfg,
		in:       in,
		distance: distance,
		out:      out,
		state:    logic.NewSystemState(),
		nav:      logic.NewNavigator(cfg.Profile.Sections),
		power:    logic.NewButton(0),
		night:    logic.NewButton(0),
		sw:       logic.NewButton(cfg.SwitchSettle),
		x:        logic.NewAxis(cfg.AxisSettle),
		y:        logic.NewAxis(cfg.AxisSettle),
	}
}

// Tick runs one iteration: inputs, then sensing when powered, then outputs.
func (m *Monitor) Tick(now time.Time) Report {
	m.handleInputs(now)

	var r Report
	if m.state.Powered {
		r = m.measure(now)
	}
	m.render()
	return r
}

// State returns a copy of the current system state.
func (m *Monitor) State() logic.SystemState {
	return m.state
}

// Trend returns the occupancy history, oldest first.
func (m *Monitor) Trend() []float64 {
	return m.trend.Values()
}

// Health returns the sensing health counters.
func (m *Monitor) Health() Health {
	return m.health
}

func (m *Monitor) handleInputs(now time.Time) {
	if pressed(m.power, m.in.Power, "power", now) {
		m.state.Powered = !m.state.Powered
		log.Printf("power %s", onOff(m.state.Powered))
	}

	if pressed(m.night, m.in.Night, "night", now) {
		if m.cfg.Profile.GateNightMode && m.state.Section != logic.SectionNightMode {
			log.Printf("night button ignored in section %s", m.state.Section)
		} else {
			m.state.NightMode = !m.state.NightMode
			log.Printf("night mode %s", onOff(m.state.NightMode))
		}
	}

	if d := direction(m.x, m.in.X, "joystick x", now); d != logic.Neutral {
		prev := m.state.Section
		m.state.Section = m.nav.Apply(d)
		if m.state.Section != prev {
			log.Printf("section -> %s", m.state.Section)
		}
	}

	// Pushing the stick up reads high and dims the LED
	switch direction(m.y, m.in.Y, "joystick y", now) {
	case logic.Increase:
		log.Printf("brightness %d", m.state.AdjustBrightness(-1))
	case logic.Decrease:
		log.Printf("brightness %d", m.state.AdjustBrightness(1))
	}

	if pressed(m.sw, m.in.Switch, "switch", now) {
		m.state.ResetBrightness()
		log.Printf("brightness reset to %d", m.state.Brightness)
	}
}

func (m *Monitor) measure(now time.Time) Report {
	if m.distance == nil {
		return Report{Tier: m.state.Tier()}
	}

	d, err := m.distance.AverageOf(m.cfg.Samples)
	if err != nil {
		m.health.ConsecutiveFailures++
		m.health.LastError = err
		log.Printf("sensor error (%d consecutive): %v", m.health.ConsecutiveFailures, err)
		return Report{Err: err, Tier: m.state.Tier()}
	}

	m.health.ConsecutiveFailures = 0
	m.health.LastError = nil
	m.health.LastReading = now

	m.state.Record(d)
	m.trend.Push(m.state.OccupancyPct)
	tier := m.state.Tier()
	log.Printf("distance=%.1fcm occupancy=%.1f%% tier=%s", d, m.state.OccupancyPct, tier)

	r := Report{Measured: true, Tier: tier}
	if tier.Audible(m.state.NightMode) {
		r.Alarm = true
		if m.out.Alarm != nil {
			if err := m.out.Alarm.Sound(); err != nil {
				log.Printf("buzzer error: %v", err)
			}
		}
	}
	return r
}

func (m *Monitor) render() {
	if m.out.Indicator != nil {
		var err error
		if m.state.Powered && m.state.HasReading() {
			err = m.out.Indicator.Show(m.state.Tier(), m.state.Brightness)
		} else {
			err = m.out.Indicator.Off()
		}
		if err != nil {
			log.Printf("indicator error: %v", err)
		}
	}
	if m.out.Display != nil {
		if err := m.out.Display.Render(m.state, m.trend.Values()); err != nil {
			log.Printf("display error: %v", err)
		}
	}
}

// pressed updates b from in. Read errors are logged and leave b untouched.
func pressed(b *logic.Button, in gpio.Input, name string, now time.Time) bool {
	if in == nil {
		return false
	}
	level, err := in.Value()
	if err != nil {
		log.Printf("%s read error: %v", name, err)
		return false
	}
	return b.Update(level, now)
}

// direction reads an axis. Read errors count as a centred stick.
func direction(a *logic.Axis, in gpio.Analog, name string, now time.Time) logic.Direction {
	if in == nil {
		return logic.Neutral
	}
	raw, err := in.Read()
	if err != nil {
		log.Printf("%s read error: %v", name, err)
		return logic.Neutral
	}
	return a.Update(raw, now)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
