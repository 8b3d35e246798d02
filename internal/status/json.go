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
	State         string     `json:"state"`
	Display       string     `json:"display"`
	Colon         bool       `json:"colon"`
	Intensity     int        `json:"intensity"`
	Alarm         AlarmJSON  `json:"alarm"`
	Melody        string     `json:"melody,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Config        ConfigJSON `json:"config"`
}

// AlarmJSON is the JSON representation of the configured alarm.
type AlarmJSON struct {
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
	Enabled bool `json:"enabled"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	RefreshUs    int64  `json:"refresh_us"`
	PollMs       int64  `json:"poll_ms"`
	InactivityMs int64  `json:"inactivity_ms"`
	SPIDev       string `json:"spi_dev,omitempty"`
	HTTPAddr     string `json:"http_addr"`
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	state := snap.State
	if state == "" {
		state = "unknown"
	}

	inner := StatusInner{
		State:         state,
		Display:       snap.Display,
		Colon:         snap.Colon,
		Intensity:     snap.Intensity,
		Alarm:         AlarmJSON{Hour: snap.Alarm.Hour, Minute: snap.Alarm.Minute, Enabled: snap.Alarm.Enabled},
		Melody:        snap.Melody,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			RefreshUs:    snap.Config.RefreshUs,
			PollMs:       snap.Config.PollMs,
			InactivityMs: snap.Config.InactivityMs,
			SPIDev:       snap.Config.SPIDev,
			HTTPAddr:     snap.Config.HTTPAddr,
		},
	}

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}
