// Package app is the foreground controller: it owns the UI state,
// consumes encoder and button events, schedules the alarm, and rewrites
// the display frame every iteration.
package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OttoBos/Arduino-Alarmclock/internal/clock"
	"github.com/OttoBos/Arduino-Alarmclock/internal/display"
	"github.com/OttoBos/Arduino-Alarmclock/internal/encoder"
	"github.com/OttoBos/Arduino-Alarmclock/internal/melody"
)

var (
	alarmsFired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "alarms_fired_total",
		Help: "count of scheduled alarm triggers",
	})
	uiState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clock_ui_state",
		Help: "current UI state (0=time 1=menu 2=settime 3=setalarm 4=melody)",
	})
)

// State is the active UI state. Exactly one is active at any instant;
// transitions happen only in Tick.
type State int

const (
	StateTime State = iota
	StateMenu
	StateSetTime
	StateSetAlarm
	StatePlayingMelody
)

func (s State) String() string {
	switch s {
	case StateTime:
		return "time"
	case StateMenu:
		return "menu"
	case StateSetTime:
		return "set-time"
	case StateSetAlarm:
		return "set-alarm"
	case StatePlayingMelody:
		return "melody"
	default:
		return "unknown"
	}
}

// AlarmConfig is the configured wake-up time. It lives for the process
// lifetime only.
type AlarmConfig struct {
	Hour    int
	Minute  int
	Enabled bool
}

// Menu options, in display order.
const (
	menuPlayOne = iota
	menuPlayTwo
	menuSetTime
	menuSetAlarm
	menuToggleAlarm
	menuOptionCount
)

var menuLabels = [menuOptionCount]string{
	menuPlayOne:     "PLA1",
	menuPlayTwo:     "PLA2",
	menuSetTime:     "SEt ",
	menuSetAlarm:    "AL  ",
	menuToggleAlarm: "AL  ", // 4th cell overlaid with the on/off glyph
}

// Timing constants.
const (
	DefaultInactivity = 9 * time.Second

	// SetTime/SetAlarm blink cadence within each second.
	blinkOn = 800 * time.Millisecond
)

// Config carries the tunable parameters of the state machine.
type Config struct {
	Inactivity time.Duration // fallback-to-Time window; 0 = DefaultInactivity
	Intensity  int           // initial display intensity
	Alarm      AlarmConfig
}

// App is the application state machine. All methods run on the
// foreground loop goroutine.
type App struct {
	frame *display.Shared
	enc   *encoder.Decoder
	btn   *encoder.Button
	clk   clock.Source
	seq   *melody.Sequencer

	state      State
	alarm      AlarmConfig
	intensity  int
	menuIndex  int
	lastInput  time.Time
	inactivity time.Duration

	lastText string
}

// New creates the state machine in the Time state.
func New(frame *display.Shared, enc *encoder.Decoder, btn *encoder.Button, clk clock.Source, seq *melody.Sequencer, cfg Config) *App {
	a := &App{
		frame:      frame,
		enc:        enc,
		btn:        btn,
		clk:        clk,
		seq:        seq,
		alarm:      cfg.Alarm,
		intensity:  clampIntensity(cfg.Intensity),
		inactivity: cfg.Inactivity,
	}
	if a.inactivity <= 0 {
		a.inactivity = DefaultInactivity
	}
	return a
}

// Tick runs one foreground iteration: consume input, evaluate the state
// machine, and publish the resulting display frame.
func (a *App) Tick(now time.Time) {
	t := a.clk.Read()
	step := a.enc.TakeStep()
	pressed := a.btn.Pressed(now)

	switch a.state {
	case StateTime:
		a.tickTime(now, t, step, pressed)
	case StateMenu:
		a.tickMenu(now, step, pressed)
	case StateSetTime:
		a.tickSetTime(now, t, step, pressed)
	case StateSetAlarm:
		a.tickSetAlarm(now, step, pressed)
	case StatePlayingMelody:
		a.tickPlaying(now, step, pressed)
	}

	// Re-read after a SetTime adjustment so the frame shows the result.
	t = a.clk.Read()
	a.frame.Store(a.render(now, t))
	uiState.Set(float64(a.state))
}

func (a *App) tickTime(now time.Time, t clock.Time, step int, pressed bool) {
	if step != 0 {
		a.intensity = clampIntensity(a.intensity + step)
	}
	if pressed {
		a.enterMenu(now)
		return
	}
	if a.alarmDue(t) {
		alarmsFired.Inc()
		a.startMelody(melody.AlarmTrack, now)
	}
}

func (a *App) tickMenu(now time.Time, step int, pressed bool) {
	if step != 0 {
		a.menuIndex += step
		if a.menuIndex < 0 {
			a.menuIndex = menuOptionCount - 1
		} else if a.menuIndex >= menuOptionCount {
			a.menuIndex = 0
		}
		a.lastInput = now
	}
	if pressed {
		a.lastInput = now
		switch a.menuIndex {
		case menuPlayOne:
			a.startMelody(melody.TrackOne, now)
		case menuPlayTwo:
			a.startMelody(melody.TrackTwo, now)
		case menuSetTime:
			a.state = StateSetTime
		case menuSetAlarm:
			a.state = StateSetAlarm
		case menuToggleAlarm:
			a.alarm.Enabled = !a.alarm.Enabled
			a.state = StateTime
		}
		return
	}
	if now.Sub(a.lastInput) >= a.inactivity {
		a.state = StateTime
	}
}

func (a *App) tickSetTime(now time.Time, t clock.Time, step int, pressed bool) {
	if step != 0 {
		a.clk.SetEpoch(t.Epoch + int64(60*step))
		a.lastInput = now
	}
	if pressed || now.Sub(a.lastInput) >= a.inactivity {
		a.state = StateTime
	}
}

func (a *App) tickSetAlarm(now time.Time, step int, pressed bool) {
	if step != 0 {
		a.adjustAlarm(step)
		a.lastInput = now
	}
	if pressed || now.Sub(a.lastInput) >= a.inactivity {
		a.state = StateTime
	}
}

func (a *App) tickPlaying(now time.Time, step int, pressed bool) {
	_ = step // rotation is ignored during playback
	if pressed {
		a.seq.Stop()
		a.state = StateTime
		return
	}
	if done := a.seq.Tick(now); done {
		a.state = StateTime
	}
}

func (a *App) enterMenu(now time.Time) {
	a.state = StateMenu
	a.menuIndex = 0
	a.lastInput = now
}

func (a *App) startMelody(track melody.Track, now time.Time) {
	a.seq.Start(track, now)
	a.state = StatePlayingMelody
}

// alarmDue reports whether the alarm fires this iteration. The
// second==0 guard is what keeps it from re-firing within the matching
// minute; it assumes the loop observes second 0 at least once.
func (a *App) alarmDue(t clock.Time) bool {
	return a.alarm.Enabled &&
		t.Hour == a.alarm.Hour &&
		t.Minute == a.alarm.Minute &&
		t.Second == 0
}

// adjustAlarm moves the alarm by one minute, rolling over into the hour.
func (a *App) adjustAlarm(step int) {
	a.alarm.Minute += step
	switch {
	case a.alarm.Minute > 59:
		a.alarm.Minute = 0
		a.alarm.Hour++
		if a.alarm.Hour > 23 {
			a.alarm.Hour = 0
		}
	case a.alarm.Minute < 0:
		a.alarm.Minute = 59
		a.alarm.Hour--
		if a.alarm.Hour < 0 {
			a.alarm.Hour = 23
		}
	}
}

func clampIntensity(n int) int {
	if n < 0 {
		return 0
	}
	if n > display.MaxIntensity {
		return display.MaxIntensity
	}
	return n
}

// State returns the active UI state.
func (a *App) State() State { return a.state }

// Alarm returns the current alarm configuration.
func (a *App) Alarm() AlarmConfig { return a.alarm }

// Intensity returns the current display intensity.
func (a *App) Intensity() int { return a.intensity }

// MenuIndex returns the selected menu option.
func (a *App) MenuIndex() int { return a.menuIndex }

// Text returns the characters rendered on the last Tick.
func (a *App) Text() string { return a.lastText }
