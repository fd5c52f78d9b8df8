package sensor

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
)

func newTestSampler(widths ...time.Duration) (*Sampler, *gpio.Echo, *gpio.FakeClock) {
	clock := &gpio.FakeClock{
		T:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Step: time.Microsecond,
	}
	echo := &gpio.Echo{
		Clock:  clock,
		Delay:  200 * time.Microsecond,
		Widths: widths,
	}
	s := NewSampler(echo.Trigger(), echo, DefaultEchoTimeout)
	s.Now = clock.Now
	s.Sleep = clock.Sleep
	return s, echo, clock
}

func TestSampleOnceConvertsPulseWidth(t *testing.T) {
	s, echo, _ := newTestSampler(5800 * time.Microsecond)

	d, err := s.SampleOnce()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-100.0) > 0.05 {
		t.Errorf("distance: got %v, want 100cm", d)
	}
	if echo.Triggers != 1 {
		t.Errorf("Triggers: got %d, want 1", echo.Triggers)
	}
}

func TestSampleOnceTimeoutWhenEchoNeverRises(t *testing.T) {
	s, _, clock := newTestSampler(0)
	clock.Step = 10 * time.Microsecond
	start := clock.Peek()

	_, err := s.SampleOnce()
	if !errors.Is(err, ErrSensorTimeout) {
		t.Fatalf("expected ErrSensorTimeout, got %v", err)
	}
	if elapsed := clock.Peek().Sub(start); elapsed > DefaultEchoTimeout+time.Millisecond {
		t.Errorf("waited %v, want about %v", elapsed, DefaultEchoTimeout)
	}
}

func TestSampleOnceTimeoutWhenEchoStuckHigh(t *testing.T) {
	s, _, clock := newTestSampler(time.Second)
	clock.Step = 10 * time.Microsecond

	if _, err := s.SampleOnce(); !errors.Is(err, ErrSensorTimeout) {
		t.Fatalf("expected ErrSensorTimeout, got %v", err)
	}
}

func TestSampleOnceEchoReadError(t *testing.T) {
	s, echo, _ := newTestSampler(5800 * time.Microsecond)
	echo.ReadError = errors.New("line gone")

	_, err := s.SampleOnce()
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrSensorTimeout) {
		t.Error("read failure should not be reported as a timeout")
	}
}

func TestSampleOnceTriggerWriteError(t *testing.T) {
	echo := gpio.NewFakeInput(false)
	trig := &gpio.FakeOutput{WriteError: errors.New("busy")}
	s := NewSampler(trig, echo, 0)

	if _, err := s.SampleOnce(); err == nil {
		t.Fatal("expected trigger error")
	}
}

func TestSampleOnceTriggerPulseShape(t *testing.T) {
	clock := &gpio.FakeClock{T: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), Step: time.Microsecond}
	trig := &gpio.FakeOutput{}
	s := NewSampler(trig, gpio.NewFakeInput(true, true, false), 0)
	s.Now = clock.Now
	s.Sleep = clock.Sleep

	if _, err := s.SampleOnce(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []bool{false, true, false}
	if len(trig.Writes) != len(want) {
		t.Fatalf("trigger writes: got %v, want %v", trig.Writes, want)
	}
	for i := range want {
		if trig.Writes[i] != want[i] {
			t.Errorf("write %d: got %v, want %v", i, trig.Writes[i], want[i])
		}
	}
}

// scriptedRanger returns scripted readings; a NaN entry is a timeout.
type scriptedRanger struct {
	readings []float64
	calls    int
}

func (r *scriptedRanger) SampleOnce() (float64, error) {
	v := r.readings[r.calls%len(r.readings)]
	r.calls++
	if math.IsNaN(v) {
		return 0, ErrSensorTimeout
	}
	return v, nil
}

func repeatReading(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestAverageOfIdenticalReadings(t *testing.T) {
	for _, d := range []float64{0, 12.5, 90, 119.99} {
		r := &scriptedRanger{readings: repeatReading(d, 10)}
		a := NewAverager(r, DefaultSampleInterval)
		a.Sleep = func(time.Duration) {}

		got, err := a.AverageOf(10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(got-d) > 1e-9 {
			t.Errorf("average of 10x%v: got %v", d, got)
		}
	}
}

func TestAverageOfMean(t *testing.T) {
	r := &scriptedRanger{readings: []float64{10, 20, 30, 40}}
	a := NewAverager(r, 0)

	got, err := a.AverageOf(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Errorf("got %v, want 25", got)
	}
}

func TestAverageOfSleepsBetweenSamples(t *testing.T) {
	r := &scriptedRanger{readings: []float64{50}}
	a := NewAverager(r, DefaultSampleInterval)
	var slept []time.Duration
	a.Sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := a.AverageOf(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.calls != 10 {
		t.Errorf("samples taken: got %d, want 10", r.calls)
	}
	if len(slept) != 9 {
		t.Fatalf("sleeps: got %d, want 9", len(slept))
	}
	for _, d := range slept {
		if d != DefaultSampleInterval {
			t.Errorf("sleep: got %v, want %v", d, DefaultSampleInterval)
		}
	}
}

func TestAverageOfExcludesTimeouts(t *testing.T) {
	nan := math.NaN()
	readings := append([]float64{nan, nan, nan}, repeatReading(50, 7)...)
	a := NewAverager(&scriptedRanger{readings: readings}, 0)

	got, err := a.AverageOf(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50 {
		t.Errorf("got %v, want 50 (timeouts excluded)", got)
	}
}

func TestAverageOfAllFail(t *testing.T) {
	a := NewAverager(&scriptedRanger{readings: []float64{math.NaN()}}, 0)

	_, err := a.AverageOf(10)
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Errorf("expected ErrSensorUnavailable, got %v", err)
	}
	if !errors.Is(err, ErrSensorTimeout) {
		t.Errorf("expected wrapped ErrSensorTimeout, got %v", err)
	}
}

func TestAverageOfClampsN(t *testing.T) {
	r := &scriptedRanger{readings: []float64{42}}
	a := NewAverager(r, 0)

	got, err := a.AverageOf(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || r.calls != 1 {
		t.Errorf("got %v after %d calls, want 42 after 1", got, r.calls)
	}
}

func TestAverageOfWithSampler(t *testing.T) {
	// 90cm = 5220us round trip
	s, echo, clock := newTestSampler(5220 * time.Microsecond)
	a := NewAverager(s, DefaultSampleInterval)
	a.Sleep = clock.Sleep

	got, err := a.AverageOf(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-90) > 0.05 {
		t.Errorf("got %v, want 90", got)
	}
	if echo.Triggers != 10 {
		t.Errorf("Triggers: got %d, want 10", echo.Triggers)
	}
}

// failingRound counts calls and always fails.
type failingRound struct {
	calls int
	ok    bool
}

func (f *failingRound) AverageOf(n int) (float64, error) {
	f.calls++
	if f.ok {
		return 80, nil
	}
	return 0, ErrSensorUnavailable
}

func TestGuardPassesThrough(t *testing.T) {
	inner := &failingRound{ok: true}
	g := NewGuard(inner, 3, time.Minute)

	got, err := g.AverageOf(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 80 {
		t.Errorf("got %v, want 80", got)
	}
	if g.State() != "closed" {
		t.Errorf("State: got %q, want closed", g.State())
	}
}

func TestGuardOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failingRound{}
	g := NewGuard(inner, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := g.AverageOf(10); !errors.Is(err, ErrSensorUnavailable) {
			t.Fatalf("round %d: expected ErrSensorUnavailable, got %v", i, err)
		}
	}
	if g.State() != "open" {
		t.Fatalf("State: got %q, want open", g.State())
	}

	// Open breaker: the sensor is not polled
	_, err := g.AverageOf(10)
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Errorf("expected ErrSensorUnavailable while open, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner calls: got %d, want 3", inner.calls)
	}
}

func TestGuardSuccessResetsFailures(t *testing.T) {
	inner := &failingRound{}
	g := NewGuard(inner, 3, time.Minute)

	g.AverageOf(10)
	g.AverageOf(10)
	inner.ok = true
	g.AverageOf(10)
	inner.ok = false
	g.AverageOf(10)
	g.AverageOf(10)

	if g.State() != "closed" {
		t.Errorf("State: got %q, want closed (failures were not consecutive)", g.State())
	}
}
