//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Chip hands out lines from a Linux GPIO character device.
type Chip struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// OpenChip opens the named GPIO chip (e.g. "gpiochip0").
func OpenChip(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &Chip{chip: chip}, nil
}

// Button requests a push-button line. Buttons are wired to ground with the
// internal pull-up enabled, so the line is active-low.
func (c *Chip) Button(offset int) (Input, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", offset, err)
	}
	c.lines = append(c.lines, l)
	return &line{l: l}, nil
}

// Input requests a plain active-high input with pull-down (e.g. the echo line).
func (c *Chip) Input(offset int) (Input, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", offset, err)
	}
	c.lines = append(c.lines, l)
	return &line{l: l}, nil
}

// Output requests an output line driven low initially.
func (c *Chip) Output(offset int) (Output, error) {
	l, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", offset, err)
	}
	c.lines = append(c.lines, l)
	return &line{l: l}, nil
}

// Close releases all requested lines and the chip.
// Lines are reconfigured to input with pull-down (matching Pi boot defaults)
// before closing, so the buzzer and LEDs do not stay driven after exit.
func (c *Chip) Close() error {
	var errs []error

	for _, l := range c.lines {
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", l.Offset(), err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", l.Offset(), err))
		}
	}
	c.lines = nil

	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

type line struct {
	l *gpiocdev.Line
}

func (l *line) Value() (bool, error) {
	v, err := l.l.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", l.l.Offset(), err)
	}
	return v == 1, nil
}

func (l *line) Set(level bool) error {
	v := 0
	if level {
		v = 1
	}
	if err := l.l.SetValue(v); err != nil {
		return fmt.Errorf("write pin %d: %w", l.l.Offset(), err)
	}
	return nil
}
