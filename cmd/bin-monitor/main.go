// Command bin-monitor measures the fill level of a trash bin with an ultrasonic
// rangefinder and shows it on an RGB LED, a buzzer and a small display.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/bin-monitor/internal/display"
	"github.com/sweeney/bin-monitor/internal/gpio"
	"github.com/sweeney/bin-monitor/internal/indicator"
	"github.com/sweeney/bin-monitor/internal/logic"
	"github.com/sweeney/bin-monitor/internal/monitor"
	"github.com/sweeney/bin-monitor/internal/sensor"
	"github.com/sweeney/bin-monitor/internal/status"
)

type options struct {
	poll            time.Duration
	samples         int
	sampleInterval  time.Duration
	echoTimeout     time.Duration
	profile         string
	chip            string
	pinTrig         int
	pinEcho         int
	pinBuzzer       int
	pinPower        int
	pinNight        int
	pinSwitch       int
	pinLEDR         int
	pinLEDG         int
	pinLEDB         int
	adcX            string
	adcY            string
	breakerFailures uint
	breakerOpen     time.Duration
	display         string
	printState      bool
}

func main() {
	var o options
	flag.DurationVar(&o.poll, "poll", 100*time.Millisecond, "Tick interval")
	flag.IntVar(&o.samples, "samples", sensor.DefaultSamples, "Rangefinder readings averaged per tick")
	flag.DurationVar(&o.sampleInterval, "sample-interval", sensor.DefaultSampleInterval, "Pause between readings of one tick")
	flag.DurationVar(&o.echoTimeout, "echo-timeout", sensor.DefaultEchoTimeout, "Maximum wait for an echo edge")
	flag.StringVar(&o.profile, "profile", logic.ProfileExtended.Name, `UI profile ("extended" or "simple")`)
	flag.StringVar(&o.chip, "chip", gpio.DefaultChip, "GPIO character device")
	flag.IntVar(&o.pinTrig, "pin-trig", gpio.DefaultPinTrig, "BCM pin number for the rangefinder trigger")
	flag.IntVar(&o.pinEcho, "pin-echo", gpio.DefaultPinEcho, "BCM pin number for the rangefinder echo")
	flag.IntVar(&o.pinBuzzer, "pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")
	flag.IntVar(&o.pinPower, "pin-power", gpio.DefaultPinPower, "BCM pin number for the power button")
	flag.IntVar(&o.pinNight, "pin-night", gpio.DefaultPinNight, "BCM pin number for the night-mode button")
	flag.IntVar(&o.pinSwitch, "pin-sw", gpio.DefaultPinSwitch, "BCM pin number for the joystick switch")
	flag.IntVar(&o.pinLEDR, "pin-led-r", gpio.DefaultPinLEDR, "BCM pin number for the red LED")
	flag.IntVar(&o.pinLEDG, "pin-led-g", gpio.DefaultPinLEDG, "BCM pin number for the green LED")
	flag.IntVar(&o.pinLEDB, "pin-led-b", gpio.DefaultPinLEDB, "BCM pin number for the blue LED")
	flag.StringVar(&o.adcX, "adc-x", "", "IIO sysfs file for joystick X (empty: centred)")
	flag.StringVar(&o.adcY, "adc-y", "", "IIO sysfs file for joystick Y (empty: centred)")
	flag.UintVar(&o.breakerFailures, "breaker-failures", 3, "Failed ticks before the sensor is rested")
	flag.DurationVar(&o.breakerOpen, "breaker-open", 5*time.Second, "How long the sensor is rested")
	flag.StringVar(&o.display, "display", "term", `Display output ("term" or "off")`)
	flag.BoolVar(&o.printState, "print-state", false, "Take one measurement, print status JSON and exit")

	flag.Parse()

	if err := run(o); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(o options) error {
	profile, err := logic.ProfileByName(o.profile)
	if err != nil {
		return err
	}
	if o.display != "term" && o.display != "off" {
		return fmt.Errorf("unknown display %q", o.display)
	}

	chip, err := gpio.OpenChip(o.chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer chip.Close()

	trig, err := chip.Output(o.pinTrig)
	if err != nil {
		return fmt.Errorf("init trigger: %w", err)
	}
	echo, err := chip.Input(o.pinEcho)
	if err != nil {
		return fmt.Errorf("init echo: %w", err)
	}

	sampler := sensor.NewSampler(trig, echo, o.echoTimeout)
	averager := sensor.NewAverager(sampler, o.sampleInterval)
	guard := sensor.NewGuard(averager, uint32(o.breakerFailures), o.breakerOpen)

	cfg := status.Config{
		PollMs:        o.poll.Milliseconds(),
		Samples:       o.samples,
		EchoTimeoutMs: o.echoTimeout.Milliseconds(),
		Profile:       profile.Name,
	}

	// Print state mode
	if o.printState {
		tracker := status.NewTracker(time.Now(), cfg)
		if err := measureOnce(guard, o.samples, tracker); err != nil {
			return err
		}
		fmt.Println(string(status.FormatJSON(tracker.Snapshot())))
		return nil
	}

	in, err := openInputs(chip, o)
	if err != nil {
		return err
	}
	out, err := openOutputs(chip, o, profile)
	if err != nil {
		return err
	}

	mcfg := monitor.DefaultConfig()
	mcfg.Profile = profile
	mcfg.Samples = o.samples
	m := monitor.New(mcfg, in, guard, out)

	tracker := status.NewTracker(time.Now(), cfg)

	log.Printf("started: poll=%v samples=%d interval=%v echo-timeout=%v profile=%s",
		o.poll, o.samples, o.sampleInterval, o.echoTimeout, profile.Name)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(m, tracker, guard, time.Now, ticker.C, sigCh)
}

func openInputs(chip *gpio.Chip, o options) (monitor.Inputs, error) {
	var in monitor.Inputs
	var err error
	if in.Power, err = chip.Button(o.pinPower); err != nil {
		return in, fmt.Errorf("init power button: %w", err)
	}
	if in.Night, err = chip.Button(o.pinNight); err != nil {
		return in, fmt.Errorf("init night button: %w", err)
	}
	if in.Switch, err = chip.Button(o.pinSwitch); err != nil {
		return in, fmt.Errorf("init joystick switch: %w", err)
	}
	in.X = analog(o.adcX)
	in.Y = analog(o.adcY)
	return in, nil
}

func analog(path string) gpio.Analog {
	if path == "" {
		return gpio.Centered{}
	}
	return gpio.NewIIOChannel(path)
}

func openOutputs(chip *gpio.Chip, o options, profile logic.Profile) (monitor.Outputs, error) {
	var out monitor.Outputs

	var leds [3]gpio.Output
	for i, p := range []int{o.pinLEDR, o.pinLEDG, o.pinLEDB} {
		l, err := chip.Output(p)
		if err != nil {
			return out, fmt.Errorf("init led pin %d: %w", p, err)
		}
		leds[i] = l
	}
	out.Indicator = indicator.NewRGBLed(leds[0], leds[1], leds[2])

	buzzer, err := chip.Output(o.pinBuzzer)
	if err != nil {
		return out, fmt.Errorf("init buzzer: %w", err)
	}
	out.Alarm = indicator.NewBuzzer(buzzer)

	if o.display == "term" {
		fb := display.NewFramebuffer(display.Width, display.Height, os.Stdout)
		out.Display = display.NewRenderer(fb, profile.Sections)
	}
	return out, nil
}

// breakerState reports the state of the sensor circuit breaker.
type breakerState interface {
	State() string
}

func runLoop(m *monitor.Monitor, tracker *status.Tracker, breaker breakerState, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case <-tick:
			m.Tick(now())

			// Update status tracker for read-only consumers
			if tracker != nil {
				tracker.Update(m.State(), m.Trend(), sensorHealth(m.Health(), breaker))
			}
		}
	}
}

func sensorHealth(h monitor.Health, breaker breakerState) status.SensorHealth {
	sh := status.SensorHealth{
		ConsecutiveFailures: h.ConsecutiveFailures,
		LastReading:         h.LastReading,
	}
	if h.LastError != nil {
		sh.LastError = h.LastError.Error()
	}
	if breaker != nil {
		sh.Breaker = breaker.State()
	}
	return sh
}

// measureOnce takes one averaging round and records it in the tracker as a
// powered-on state.
func measureOnce(d monitor.Distance, samples int, tracker *status.Tracker) error {
	cm, err := d.AverageOf(samples)
	if err != nil {
		return fmt.Errorf("measure: %w", err)
	}

	state := logic.NewSystemState()
	state.Powered = true
	state.Record(cm)

	var trend logic.Trend
	trend.Push(state.OccupancyPct)

	tracker.Update(state, trend.Values(), status.SensorHealth{LastReading: time.Now()})
	return nil
}
