package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Powered       bool       `json:"powered"`
	NightMode     bool       `json:"night_mode"`
	Brightness    int        `json:"brightness"`
	Section       string     `json:"section"`
	DistanceCm    *float64   `json:"distance_cm"`
	OccupancyPct  float64    `json:"occupancy_pct"`
	Tier          string     `json:"tier"`
	Trend         []float64  `json:"trend"`
	Sensor        SensorJSON `json:"sensor"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Config        ConfigJSON `json:"config"`
}

// SensorJSON is the JSON representation of sensor health.
type SensorJSON struct {
	ConsecutiveFailures int    `json:"consecutive_failures"`
	LastError           string `json:"last_error,omitempty"`
	LastReading         string `json:"last_reading,omitempty"`
	Breaker             string `json:"breaker,omitempty"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs        int64  `json:"poll_ms"`
	Samples       int    `json:"samples"`
	EchoTimeoutMs int64  `json:"echo_timeout_ms"`
	Profile       string `json:"profile"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Powered:       snap.State.Powered,
		NightMode:     snap.State.NightMode,
		Brightness:    snap.State.Brightness,
		Section:       snap.State.Section.String(),
		OccupancyPct:  snap.State.OccupancyPct,
		Tier:          string(snap.State.Tier()),
		Trend:         snap.Trend,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Sensor: SensorJSON{
			ConsecutiveFailures: snap.Sensor.ConsecutiveFailures,
			LastError:           snap.Sensor.LastError,
			Breaker:             snap.Sensor.Breaker,
		},
		Config: ConfigJSON{
			PollMs:        snap.Config.PollMs,
			Samples:       snap.Config.Samples,
			EchoTimeoutMs: snap.Config.EchoTimeoutMs,
			Profile:       snap.Config.Profile,
		},
	}
	if snap.State.HasReading() {
		d := snap.State.DistanceCm
		inner.DistanceCm = &d
	}
	if !snap.Sensor.LastReading.IsZero() {
		inner.Sensor.LastReading = snap.Sensor.LastReading.UTC().Format(time.RFC3339)
	}
	if inner.Trend == nil {
		inner.Trend = []float64{}
	}
	return inner
}

// FormatJSON returns the indented JSON status.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
