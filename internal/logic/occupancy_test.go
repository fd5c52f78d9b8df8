package logic

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOccupancyPct(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0, 100.0},
		{120, 0.0},
		{60, 50.0},
		{90, 25.0},
		{150, 0.0},
		{-5, 100.0},
	}
	for _, c := range cases {
		if got := OccupancyPct(c.distance); !approxEqual(got, c.want) {
			t.Errorf("OccupancyPct(%v): got %v, want %v", c.distance, got, c.want)
		}
	}
}

func TestOccupancyPctStaysInRange(t *testing.T) {
	for d := -50.0; d <= 200.0; d += 0.5 {
		got := OccupancyPct(d)
		if got < 0 || got > 100 {
			t.Fatalf("OccupancyPct(%v) = %v, outside [0, 100]", d, got)
		}
	}
}

func TestOccupancyPctNearlyFull(t *testing.T) {
	got := OccupancyPct(10)
	if math.Abs(got-91.6667) > 0.001 {
		t.Errorf("OccupancyPct(10): got %v, want ~91.667", got)
	}
	if TierFor(got) != TierHigh {
		t.Errorf("tier for %v: got %s, want HIGH", got, TierFor(got))
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		pct  float64
		want Tier
	}{
		{0, TierLow},
		{25, TierLow},
		{64.9, TierLow},
		{65, TierMedium},
		{75, TierMedium},
		{85, TierMedium},
		{85.1, TierHigh},
		{100, TierHigh},
	}
	for _, c := range cases {
		if got := TierFor(c.pct); got != c.want {
			t.Errorf("TierFor(%v): got %s, want %s", c.pct, got, c.want)
		}
	}
}

func TestTierAudible(t *testing.T) {
	if !TierHigh.Audible(false) {
		t.Error("HIGH should be audible with night mode off")
	}
	if TierHigh.Audible(true) {
		t.Error("HIGH should be silent with night mode on")
	}
	if TierMedium.Audible(false) {
		t.Error("MEDIUM should never be audible")
	}
	if TierLow.Audible(false) {
		t.Error("LOW should never be audible")
	}
}
