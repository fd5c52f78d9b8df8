package logic

// BinDepthCm is the sensor-to-bottom clearance of an empty bin.
const BinDepthCm = 120.0

// Occupancy thresholds in percent.
const (
	MediumThresholdPct = 65.0
	HighThresholdPct   = 85.0
)

// OccupancyPct maps a filtered distance to a fill percentage in [0, 100].
// Readings beyond the bin depth count as empty and negative readings as full.
func OccupancyPct(distanceCm float64) float64 {
	if distanceCm > BinDepthCm {
		return 0.0
	}
	if distanceCm < 0 {
		return 100.0
	}
	return 100.0 * (1.0 - distanceCm/BinDepthCm)
}

// TierFor returns the alert tier for an occupancy percentage.
func TierFor(pct float64) Tier {
	switch {
	case pct < MediumThresholdPct:
		return TierLow
	case pct <= HighThresholdPct:
		return TierMedium
	default:
		return TierHigh
	}
}

// Audible reports whether the tier sounds the buzzer.
// Night mode silences the alert.
func (t Tier) Audible(nightMode bool) bool {
	return t == TierHigh && !nightMode
}
