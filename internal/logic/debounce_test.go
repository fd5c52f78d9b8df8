package logic

import (
	"testing"
	"time"
)

func TestButtonRisingEdge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewButton(0)

	levels := []bool{false, true, true, false, true}
	want := []bool{false, true, false, false, true}

	for i, level := range levels {
		got := b.Update(level, now.Add(time.Duration(i)*100*time.Millisecond))
		if got != want[i] {
			t.Errorf("tick %d (level=%v): got edge %v, want %v", i, level, got, want[i])
		}
	}
}

func TestButtonStartsReleased(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewButton(0)
	if b.Level() {
		t.Error("new button should start with lastLevel=false")
	}
	// Held at startup counts as a press on the first tick
	if !b.Update(true, now) {
		t.Error("expected edge on first high level")
	}
}

func TestButtonSettleSwallowsBounce(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewButton(SwitchSettle)

	if !b.Update(true, now) {
		t.Fatal("expected first press")
	}
	b.Update(false, now.Add(100*time.Millisecond))

	// Second rising edge inside the 300ms window is ignored
	if b.Update(true, now.Add(200*time.Millisecond)) {
		t.Error("expected edge inside settle window to be ignored")
	}
	b.Update(false, now.Add(300*time.Millisecond))

	// After the window a new edge is reported
	if !b.Update(true, now.Add(400*time.Millisecond)) {
		t.Error("expected edge after settle window")
	}
}

func TestButtonLevelTrackedWhileSettling(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewButton(SwitchSettle)

	b.Update(true, now)
	b.Update(false, now.Add(100*time.Millisecond))
	b.Update(true, now.Add(200*time.Millisecond)) // swallowed

	// Still held after the window: no new edge because the level never dropped
	if b.Update(true, now.Add(400*time.Millisecond)) {
		t.Error("held button must not produce an edge after settling")
	}
	if !b.Level() {
		t.Error("expected level to be tracked during settle window")
	}
}

func TestAxisThresholds(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		raw  uint16
		want Direction
	}{
		{2048, Neutral},
		{3500, Neutral},
		{500, Neutral},
		{3501, Increase},
		{4095, Increase},
		{499, Decrease},
		{0, Decrease},
	}
	for _, c := range cases {
		a := NewAxis(AxisSettle)
		if got := a.Update(c.raw, now); got != c.want {
			t.Errorf("raw %d: got %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestAxisSettleWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a := NewAxis(AxisSettle)

	if got := a.Update(4000, now); got != Increase {
		t.Fatalf("first deflection: got %s, want INCREASE", got)
	}
	if got := a.Update(4000, now.Add(100*time.Millisecond)); got != Neutral {
		t.Errorf("inside settle window: got %s, want NEUTRAL", got)
	}
	if got := a.Update(4000, now.Add(150*time.Millisecond)); got != Increase {
		t.Errorf("after settle window: got %s, want INCREASE", got)
	}
}

func TestAxisNeutralDoesNotSettle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a := NewAxis(AxisSettle)

	a.Update(2048, now)
	if got := a.Update(100, now.Add(10*time.Millisecond)); got != Decrease {
		t.Errorf("expected DECREASE right after a neutral sample, got %s", got)
	}
}

func TestAxesAreIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	x := NewAxis(AxisSettle)
	y := NewAxis(AxisSettle)

	if x.Update(4000, now) != Increase {
		t.Fatal("expected X INCREASE")
	}
	// X settling must not stall Y
	if got := y.Update(100, now.Add(10*time.Millisecond)); got != Decrease {
		t.Errorf("Y while X settles: got %s, want DECREASE", got)
	}
}
