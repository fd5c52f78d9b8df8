package sensor

import (
	"fmt"
	"time"
)

// DefaultSampleInterval is the pause between readings of one round.
const DefaultSampleInterval = 10 * time.Millisecond

// DefaultSamples is the number of readings averaged per tick.
const DefaultSamples = 10

// Ranger takes one distance reading.
type Ranger interface {
	SampleOnce() (float64, error)
}

// Averager reduces several readings to one filtered distance.
type Averager struct {
	ranger   Ranger
	interval time.Duration

	// Sleep defaults to time.Sleep; tests replace it.
	Sleep func(time.Duration)
}

// NewAverager creates an Averager pausing interval between readings.
func NewAverager(r Ranger, interval time.Duration) *Averager {
	return &Averager{
		ranger:   r,
		interval: interval,
		Sleep:    time.Sleep,
	}
}

// AverageOf takes n readings (n < 1 is treated as 1) and returns the mean of
// the successful ones. Failed readings are left out of the mean; if every
// reading fails the error wraps both ErrSensorUnavailable and the last
// failure.
func (a *Averager) AverageOf(n int) (float64, error) {
	if n < 1 {
		n = 1
	}

	var (
		sum     float64
		ok      int
		lastErr error
	)
	for i := 0; i < n; i++ {
		if i > 0 && a.interval > 0 {
			a.Sleep(a.interval)
		}
		d, err := a.ranger.SampleOnce()
		if err != nil {
			lastErr = err
			continue
		}
		sum += d
		ok++
	}

	if ok == 0 {
		return 0, fmt.Errorf("%w: all %d samples failed: %w", ErrSensorUnavailable, n, lastErr)
	}
	return sum / float64(ok), nil
}
