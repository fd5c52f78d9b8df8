package logic

// TrendSize is the number of occupancy samples kept for the trend view.
const TrendSize = 10

// Trend is a fixed-capacity history of occupancy samples.
// It is always full: it starts as TrendSize zeros and every Push evicts the
// oldest value. The zero value is ready to use.
// Not safe for concurrent use.
type Trend struct {
	buf  [TrendSize]float64
	head int // oldest value, and next write position
}

// Push appends v as the newest sample, dropping the oldest.
func (t *Trend) Push(v float64) {
	// Overwrite oldest: head is already pointing at it
	t.buf[t.head] = v
	t.head = (t.head + 1) % TrendSize
}

// Values returns the samples oldest first. The slice always has TrendSize
// elements and is a copy.
func (t *Trend) Values() []float64 {
	out := make([]float64, TrendSize)
	for i := range out {
		out[i] = t.buf[(t.head+i)%TrendSize]
	}
	return out
}

// Latest returns the newest sample.
func (t *Trend) Latest() float64 {
	return t.buf[(t.head+TrendSize-1)%TrendSize]
}
