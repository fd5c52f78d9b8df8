package gpio

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// IIOChannel reads an ADC channel exposed by a Linux IIO driver, e.g.
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw (MCP3208, ADS1015, ...).
type IIOChannel struct {
	path string
}

// NewIIOChannel returns a channel reading the given sysfs raw file.
func NewIIOChannel(path string) *IIOChannel {
	return &IIOChannel{path: path}
}

// Read returns the raw sample. Values outside uint16 are clamped.
func (c *IIOChannel) Read() (uint16, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("read adc %s: %w", c.path, err)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse adc %s: %w", c.path, err)
	}
	if v < 0 {
		return 0, nil
	}
	if v > 0xFFFF {
		return 0xFFFF, nil
	}
	return uint16(v), nil
}

// Centered is an Analog that always reads mid-scale. Used when no joystick
// axis is configured.
type Centered struct{}

// Read returns the mid-scale value of a 12-bit ADC.
func (Centered) Read() (uint16, error) {
	return 2048, nil
}
