// Package status provides a thread-safe status tracker for the clock
// daemon. It is read by the HTTP handlers.
package status

import (
	"sync"
	"time"
)

// Alarm contains the configured alarm for display.
type Alarm struct {
	Hour    int
	Minute  int
	Enabled bool
}

// Config contains daemon configuration for display.
type Config struct {
	RefreshUs    int64
	PollMs       int64
	InactivityMs int64
	SPIDev       string
	HTTPAddr     string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State     string
	Display   string
	Colon     bool
	Intensity int
	Alarm     Alarm
	Melody    string
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the UI state, rendered display text, and brightness.
// Called from runLoop on every tick.
func (t *Tracker) Update(state, display string, colon bool, intensity int) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Display = display
	t.snap.Colon = colon
	t.snap.Intensity = intensity
	t.mu.Unlock()
}

// SetAlarm sets the configured alarm.
func (t *Tracker) SetAlarm(a Alarm) {
	t.mu.Lock()
	t.snap.Alarm = a
	t.mu.Unlock()
}

// SetMelody sets the name of the playing melody ("" when idle).
func (t *Tracker) SetMelody(name string) {
	t.mu.Lock()
	t.snap.Melody = name
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
