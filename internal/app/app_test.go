package app

import (
	"testing"
	"time"

	"github.com/OttoBos/Arduino-Alarmclock/internal/clock"
	"github.com/OttoBos/Arduino-Alarmclock/internal/display"
	"github.com/OttoBos/Arduino-Alarmclock/internal/encoder"
	"github.com/OttoBos/Arduino-Alarmclock/internal/gpio"
	"github.com/OttoBos/Arduino-Alarmclock/internal/melody"
	"github.com/OttoBos/Arduino-Alarmclock/internal/segment"
	"github.com/OttoBos/Arduino-Alarmclock/internal/tone"
)

type fixture struct {
	app    *App
	frame  *display.Shared
	phaseA *gpio.FakeInput
	phaseB *gpio.FakeInput
	btn    *gpio.FakeInput
	clk    *clock.FakeSource
	player *tone.FakePlayer
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		frame:  &display.Shared{},
		phaseA: gpio.NewFakeInput(false),
		phaseB: gpio.NewFakeInput(false),
		btn:    gpio.NewFakeInput(false),
		clk:    clock.NewFakeSource(12, 0, 0),
		player: tone.NewFakePlayer(),
	}
	dec := encoder.NewDecoder(f.phaseA, f.phaseB, 0)
	f.phaseA.OnEdge(dec.EdgeA)
	f.phaseB.OnEdge(dec.EdgeB)
	btn := encoder.NewButton(f.btn, encoder.DefaultCooldown)
	seq := melody.NewSequencer(f.player, melody.DefaultMaxPlay)
	f.app = New(f.frame, dec, btn, f.clk, seq, cfg)
	return f
}

// stepCW walks the phase lines through one clockwise detent.
func (f *fixture) stepCW() {
	f.phaseB.Drive(true)
	f.phaseA.Drive(true)
	f.phaseA.Drive(false)
	f.phaseB.Drive(false)
}

// stepCCW walks the phase lines through one counter-clockwise detent.
func (f *fixture) stepCCW() {
	f.phaseA.Drive(true)
	f.phaseB.Drive(true)
	f.phaseB.Drive(false)
	f.phaseA.Drive(false)
}

// press holds the button for one tick at now, then releases it.
func (f *fixture) press(now time.Time) {
	f.btn.SetLevel(true)
	f.app.Tick(now)
	f.btn.SetLevel(false)
}

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInitialStateShowsTime(t *testing.T) {
	f := newFixture(t, Config{Intensity: 7})
	f.app.Tick(base)

	if f.app.State() != StateTime {
		t.Fatalf("state: %v", f.app.State())
	}
	fr := f.frame.Load()
	if fr.Slots[0].Pattern != segment.Encode('1') || fr.Slots[1].Pattern != segment.Encode('2') {
		t.Errorf("hour digits wrong: %+v", fr.Slots)
	}
	if fr.Slots[2].Pattern != segment.Encode('0') || fr.Slots[3].Pattern != segment.Encode('0') {
		t.Errorf("minute digits wrong: %+v", fr.Slots)
	}
	if !fr.Colon {
		t.Error("colon should be on at an even second")
	}
	if fr.Intensity != 7 {
		t.Errorf("intensity: %d", fr.Intensity)
	}
}

func TestColonBlinksWithSeconds(t *testing.T) {
	f := newFixture(t, Config{})
	f.clk.Advance(1) // 12:00:01
	f.app.Tick(base)
	if f.frame.Load().Colon {
		t.Error("colon should be off at an odd second")
	}
	f.clk.Advance(1)
	f.app.Tick(base.Add(time.Second))
	if !f.frame.Load().Colon {
		t.Error("colon should be on at an even second")
	}
}

func TestIndicatorReflectsAlarmEnabled(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Hour: 7, Enabled: true}})
	f.app.Tick(base)
	if !f.frame.Load().Indicator {
		t.Error("indicator should be on while the alarm is enabled")
	}
}

func TestIntensityAdjustClamped(t *testing.T) {
	f := newFixture(t, Config{Intensity: 9})
	now := base

	for i := 0; i < 5; i++ {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	if got := f.app.Intensity(); got != display.MaxIntensity {
		t.Errorf("intensity: got %d, want %d", got, display.MaxIntensity)
	}

	for i := 0; i < 15; i++ {
		f.stepCCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	if got := f.app.Intensity(); got != 0 {
		t.Errorf("intensity: got %d, want 0", got)
	}
}

func TestButtonEntersMenu(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Enabled: true}})
	f.press(base)

	if f.app.State() != StateMenu {
		t.Fatalf("state: %v", f.app.State())
	}
	fr := f.frame.Load()
	if fr.Colon || fr.Indicator {
		t.Error("menu must force colon and indicator off")
	}
	if f.app.Text() != "PLA1" {
		t.Errorf("menu text: %q", f.app.Text())
	}
}

func TestMenuWraparound(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	now := base

	for i := 0; i < menuOptionCount; i++ {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	if f.app.MenuIndex() != 0 {
		t.Errorf("forward wrap: index %d", f.app.MenuIndex())
	}

	f.stepCCW()
	f.app.Tick(now.Add(10 * time.Millisecond))
	if f.app.MenuIndex() != menuToggleAlarm {
		t.Errorf("backward wrap: index %d", f.app.MenuIndex())
	}
}

func TestMenuInactivityFallsBackToTime(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)

	f.app.Tick(base.Add(DefaultInactivity - time.Millisecond))
	if f.app.State() != StateMenu {
		t.Fatal("left menu before the inactivity window")
	}
	f.app.Tick(base.Add(DefaultInactivity))
	if f.app.State() != StateTime {
		t.Errorf("state after inactivity: %v", f.app.State())
	}
}

func TestMenuInputResetsInactivity(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)

	almost := base.Add(DefaultInactivity - time.Second)
	f.stepCW()
	f.app.Tick(almost)

	// The original window has passed, but the rotation reset it.
	f.app.Tick(base.Add(DefaultInactivity))
	if f.app.State() != StateMenu {
		t.Error("rotation did not reset the inactivity timer")
	}
	f.app.Tick(almost.Add(DefaultInactivity))
	if f.app.State() != StateTime {
		t.Error("menu did not time out after the reset window")
	}
}

func TestToggleAlarmReturnsDirectlyToTime(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	now := base

	// Rotate to the toggle entry.
	for f.app.MenuIndex() != menuToggleAlarm {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	if f.app.Text() != "AL -" {
		t.Errorf("toggle entry text: %q", f.app.Text())
	}

	f.press(now.Add(time.Second))
	if !f.app.Alarm().Enabled {
		t.Error("alarm not enabled by toggle")
	}
	if f.app.State() != StateTime {
		t.Errorf("state after toggle: %v", f.app.State())
	}

	// Re-enter the menu; the entry now shows the enabled glyph.
	f.press(now.Add(2 * time.Second))
	for f.app.MenuIndex() != menuToggleAlarm {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now.Add(3 * time.Second))
	}
	if f.app.Text() != "AL o" {
		t.Errorf("toggle entry text with alarm on: %q", f.app.Text())
	}
}

func TestMenuStartsMelody(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	f.press(base.Add(time.Second)) // select PLA1

	if f.app.State() != StatePlayingMelody {
		t.Fatalf("state: %v", f.app.State())
	}
	f.app.Tick(base.Add(1100 * time.Millisecond))
	tones := f.player.Tones()
	if len(tones) == 0 {
		t.Fatal("no tones emitted")
	}
	if tones[0].Freq != melody.TrackOne.Notes[0].Freq {
		t.Errorf("first tone %d, want track one's opening note", tones[0].Freq)
	}
}

func TestSetTimeAdjustsClockByMinutes(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	now := base
	for f.app.MenuIndex() != menuSetTime {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	f.press(now.Add(time.Second))
	if f.app.State() != StateSetTime {
		t.Fatalf("state: %v", f.app.State())
	}

	f.stepCW()
	f.app.Tick(now.Add(1100 * time.Millisecond))
	got := f.clk.Read()
	if got.Hour != 12 || got.Minute != 1 {
		t.Errorf("after +1 minute: %02d:%02d", got.Hour, got.Minute)
	}

	f.stepCCW()
	f.app.Tick(now.Add(1200 * time.Millisecond))
	f.stepCCW()
	f.app.Tick(now.Add(1300 * time.Millisecond))
	got = f.clk.Read()
	if got.Hour != 11 || got.Minute != 59 {
		t.Errorf("after -2 minutes: %02d:%02d", got.Hour, got.Minute)
	}

	// Button press returns to Time.
	f.press(now.Add(3 * time.Second))
	if f.app.State() != StateTime {
		t.Errorf("state after press: %v", f.app.State())
	}
}

func TestSetStateBlinkCadence(t *testing.T) {
	f := newFixture(t, Config{Inactivity: time.Minute})
	f.press(base)
	now := base
	for f.app.MenuIndex() != menuSetTime {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	f.press(now.Add(time.Second))

	// 0..799ms into a second: digits visible, colon forced on.
	on := base.Add(10*time.Second + 100*time.Millisecond)
	f.app.Tick(on)
	fr := f.frame.Load()
	if fr.Slots[0].Pattern == 0 {
		t.Error("digits blank during the on phase")
	}
	if !fr.Colon {
		t.Error("colon not forced on in a setting state")
	}

	// 800..999ms: all digits blank.
	off := base.Add(10*time.Second + 900*time.Millisecond)
	f.app.Tick(off)
	fr = f.frame.Load()
	for i, slot := range fr.Slots {
		if slot.Pattern != 0 {
			t.Errorf("digit %d lit during the off phase: %#02x", i, slot.Pattern)
		}
	}
}

func TestSetAlarmMinuteRollover(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Hour: 23, Minute: 59}})
	f.press(base)
	now := base
	for f.app.MenuIndex() != menuSetAlarm {
		f.stepCW()
		now = now.Add(10 * time.Millisecond)
		f.app.Tick(now)
	}
	f.press(now.Add(time.Second))
	if f.app.State() != StateSetAlarm {
		t.Fatalf("state: %v", f.app.State())
	}

	f.stepCW()
	f.app.Tick(now.Add(1100 * time.Millisecond))
	if al := f.app.Alarm(); al.Hour != 0 || al.Minute != 0 {
		t.Errorf("23:59 +1: %02d:%02d", al.Hour, al.Minute)
	}

	f.stepCCW()
	f.app.Tick(now.Add(1200 * time.Millisecond))
	if al := f.app.Alarm(); al.Hour != 23 || al.Minute != 59 {
		t.Errorf("00:00 -1: %02d:%02d", al.Hour, al.Minute)
	}
}

func TestAlarmFiresAtConfiguredMinute(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Hour: 7, Minute: 0, Enabled: true}})
	f.clk.SetEpoch(6*3600 + 59*60 + 59) // 06:59:59
	f.app.Tick(base)
	if f.app.State() != StateTime {
		t.Fatal("fired early")
	}

	f.clk.Advance(1) // 07:00:00
	f.app.Tick(base.Add(time.Second))
	if f.app.State() != StatePlayingMelody {
		t.Fatalf("state at 07:00:00: %v", f.app.State())
	}

	// The alarm melody sounds on the following iteration.
	f.app.Tick(base.Add(1100 * time.Millisecond))
	tones := f.player.Tones()
	if len(tones) == 0 {
		t.Fatal("alarm produced no tones")
	}
	if tones[0].Freq != melody.AlarmTrack.Notes[0].Freq {
		t.Errorf("alarm tone %d, want the alarm track's opening note", tones[0].Freq)
	}

	// A button press returns to Time and silences the output.
	f.press(base.Add(2 * time.Second))
	if f.app.State() != StateTime {
		t.Errorf("state after press: %v", f.app.State())
	}
	last, ok := f.player.Last()
	if !ok || last.Freq != 0 {
		t.Errorf("expected a silence command, got %+v", last)
	}
}

func TestAlarmDisabledDoesNotFire(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Hour: 7, Minute: 0, Enabled: false}})
	f.clk.SetEpoch(7 * 3600) // 07:00:00
	f.app.Tick(base)
	if f.app.State() != StateTime {
		t.Errorf("disabled alarm fired: %v", f.app.State())
	}
}

// TestAlarmSkippedIfSecondZeroNotObserved documents a latent edge of the
// second==0 guard: if the foreground loop never runs during the matching
// second (here it first observes 07:00:01), the alarm is skipped
// entirely for that day.
func TestAlarmSkippedIfSecondZeroNotObserved(t *testing.T) {
	f := newFixture(t, Config{Alarm: AlarmConfig{Hour: 7, Minute: 0, Enabled: true}})
	f.clk.SetEpoch(7*3600 + 1) // 07:00:01
	f.app.Tick(base)
	if f.app.State() != StateTime {
		t.Errorf("alarm fired without observing second 0: %v", f.app.State())
	}
}

func TestPlayingMelodyAlternatesColonAndIndicator(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	f.press(base.Add(time.Second)) // start melody A

	f.clk.SetEpoch(12 * 3600) // even second
	f.app.Tick(base.Add(2 * time.Second))
	fr := f.frame.Load()
	if !fr.Colon || fr.Indicator {
		t.Errorf("even second: colon=%v indicator=%v, want on/off", fr.Colon, fr.Indicator)
	}

	f.clk.Advance(1)
	f.app.Tick(base.Add(3 * time.Second))
	fr = f.frame.Load()
	if fr.Colon || !fr.Indicator {
		t.Errorf("odd second: colon=%v indicator=%v, want off/on", fr.Colon, fr.Indicator)
	}
}

func TestMelodyTimesOutToTime(t *testing.T) {
	f := newFixture(t, Config{})
	f.press(base)
	f.press(base.Add(time.Second)) // start melody A

	f.app.Tick(base.Add(time.Second + melody.DefaultMaxPlay))
	if f.app.State() != StateTime {
		t.Errorf("state after max play duration: %v", f.app.State())
	}
	last, ok := f.player.Last()
	if !ok || last.Freq != 0 {
		t.Errorf("expected a silence command, got %+v", last)
	}
}
