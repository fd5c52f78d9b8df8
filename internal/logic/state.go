package logic

// Brightness limits for the LED indicator.
const (
	MinBrightness     = 0
	MaxBrightness     = 7
	DefaultBrightness = 6
)

// NoReading marks DistanceCm before the first successful measurement.
const NoReading = -1.0

// SystemState is the aggregate record read by the display and LED.
// It is owned by a single controller and never shared across goroutines.
type SystemState struct {
	Brightness   int
	Powered      bool
	NightMode    bool
	DistanceCm   float64
	OccupancyPct float64
	Section      Section
}

// NewSystemState returns the power-on defaults: off, night mode on,
// brightness 6, no reading yet.
func NewSystemState() SystemState {
	return SystemState{
		Brightness: DefaultBrightness,
		NightMode:  true,
		DistanceCm: NoReading,
		Section:    SectionMain,
	}
}

// AdjustBrightness adds delta and clamps to [MinBrightness, MaxBrightness].
func (s *SystemState) AdjustBrightness(delta int) int {
	s.Brightness += delta
	if s.Brightness > MaxBrightness {
		s.Brightness = MaxBrightness
	}
	if s.Brightness < MinBrightness {
		s.Brightness = MinBrightness
	}
	return s.Brightness
}

// ResetBrightness restores DefaultBrightness.
func (s *SystemState) ResetBrightness() {
	s.Brightness = DefaultBrightness
}

// Record stores a filtered distance and its derived occupancy.
func (s *SystemState) Record(distanceCm float64) {
	s.DistanceCm = distanceCm
	s.OccupancyPct = OccupancyPct(distanceCm)
}

// HasReading reports whether a measurement has been recorded.
func (s SystemState) HasReading() bool {
	return s.DistanceCm != NoReading
}

// Tier returns the alert tier of the last recorded occupancy.
func (s SystemState) Tier() Tier {
	return TierFor(s.OccupancyPct)
}
