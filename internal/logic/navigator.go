package logic

// Navigator is the cyclic section selector driven by the joystick X axis.
type Navigator struct {
	current Section
	count   int
}

// NewNavigator creates a Navigator over the first count sections, starting at
// SectionMain. count is clamped to [1, SectionCount].
func NewNavigator(count int) *Navigator {
	if count < 1 {
		count = 1
	}
	if count > SectionCount {
		count = SectionCount
	}
	return &Navigator{count: count}
}

// Apply moves to the successor on Increase and to the predecessor on
// Decrease, wrapping around. It returns the active section.
func (n *Navigator) Apply(d Direction) Section {
	switch d {
	case Increase:
		n.current = Section((int(n.current) + 1) % n.count)
	case Decrease:
		n.current = Section((int(n.current) + n.count - 1) % n.count)
	}
	return n.current
}

// Current returns the active section.
func (n *Navigator) Current() Section {
	return n.current
}

// Count returns the number of reachable sections.
func (n *Navigator) Count() int {
	return n.count
}
