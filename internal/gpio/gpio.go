// Package gpio provides digital and analog pin access with hardware abstraction.
// The real implementation uses the Linux GPIO character device and IIO sysfs.
// The fake implementations allow testing without hardware.
package gpio

// Input reads a digital line.
type Input interface {
	// Value returns the logical level (true = active).
	// Active-low wiring is handled when the line is requested.
	Value() (bool, error)
}

// Output drives a digital line.
type Output interface {
	// Set drives the line to the logical level.
	Set(level bool) error
}

// Analog reads a raw ADC sample.
type Analog interface {
	Read() (uint16, error)
}

// Default line offsets (BCM numbering)
const (
	DefaultPinTrig   = 17 // Rangefinder trigger
	DefaultPinEcho   = 16 // Rangefinder echo
	DefaultPinBuzzer = 10
	DefaultPinPower  = 5  // Power button
	DefaultPinNight  = 6  // Night-mode button
	DefaultPinSwitch = 22 // Joystick push switch
	DefaultPinLEDR   = 13
	DefaultPinLEDG   = 19
	DefaultPinLEDB   = 26
)

// DefaultChip is the GPIO character device used on a Raspberry Pi.
const DefaultChip = "gpiochip0"
