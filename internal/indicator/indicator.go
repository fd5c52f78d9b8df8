// Package indicator drives the tri-color fill LED and the alert buzzer.
package indicator

import (
	"fmt"
	"image/color"
	"time"

	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/logic"
)

var (
	Green  = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	Yellow = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	Red    = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	Black  = color.RGBA{A: 0xff}
)

// ColorFor returns the LED color of an alert tier.
func ColorFor(t logic.Tier) color.RGBA {
	switch t {
	case logic.TierMedium:
		return Yellow
	case logic.TierHigh:
		return Red
	default:
		return Green
	}
}

// Dim scales c by brightness/MaxBrightness. Brightness 0 is black.
func Dim(c color.RGBA, brightness int) color.RGBA {
	if brightness <= logic.MinBrightness {
		return Black
	}
	if brightness >= logic.MaxBrightness {
		return c
	}
	scale := func(v uint8) uint8 {
		return uint8(int(v) * brightness / logic.MaxBrightness)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// RGBLed is a common-cathode RGB LED on three GPIO lines. Each channel is
// either on or off, so dimming only distinguishes dark from lit.
type RGBLed struct {
	r, g, b gpio.Output
}

// NewRGBLed creates an RGBLed on the given lines.
func NewRGBLed(r, g, b gpio.Output) *RGBLed {
	return &RGBLed{r: r, g: g, b: b}
}

// Show lights the LED with the tier color at the given brightness.
func (l *RGBLed) Show(t logic.Tier, brightness int) error {
	return l.fill(Dim(ColorFor(t), brightness))
}

// Off turns every channel off.
func (l *RGBLed) Off() error {
	return l.fill(Black)
}

func (l *RGBLed) fill(c color.RGBA) error {
	var errs []error
	if err := l.r.Set(c.R > 0); err != nil {
		errs = append(errs, fmt.Errorf("red: %w", err))
	}
	if err := l.g.Set(c.G > 0); err != nil {
		errs = append(errs, fmt.Errorf("green: %w", err))
	}
	if err := l.b.Set(c.B > 0); err != nil {
		errs = append(errs, fmt.Errorf("blue: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("led: %v", errs)
	}
	return nil
}

// DefaultPulse is how long the buzzer sounds per alert.
const DefaultPulse = 5 * time.Millisecond

// Buzzer is an active buzzer on one GPIO line.
type Buzzer struct {
	out   gpio.Output
	pulse time.Duration

	// Sleep defaults to time.Sleep; tests replace it.
	Sleep func(time.Duration)
}

// NewBuzzer creates a Buzzer pulsing for DefaultPulse.
func NewBuzzer(out gpio.Output) *Buzzer {
	return &Buzzer{out: out, pulse: DefaultPulse, Sleep: time.Sleep}
}

// Sound drives the line high for one pulse.
func (b *Buzzer) Sound() error {
	if err := b.out.Set(true); err != nil {
		return fmt.Errorf("buzzer on: %w", err)
	}
	b.Sleep(b.pulse)
	if err := b.out.Set(false); err != nil {
		return fmt.Errorf("buzzer off: %w", err)
	}
	return nil
}
