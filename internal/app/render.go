package app

import (
	"time"

	"github.com/OttoBos/Arduino-Alarmclock/internal/clock"
	"github.com/OttoBos/Arduino-Alarmclock/internal/display"
	"github.com/OttoBos/Arduino-Alarmclock/internal/segment"
)

// render builds the display frame for the active state.
func (a *App) render(now time.Time, t clock.Time) display.Frame {
	var f display.Frame
	f.Intensity = a.intensity

	switch a.state {
	case StateTime:
		f = a.renderChars(f, timeChars(t.Hour, t.Minute))
		f.Colon = t.Second%2 == 0
		f.Indicator = a.alarm.Enabled

	case StateMenu:
		label := []rune(menuLabels[a.menuIndex])
		if a.menuIndex == menuToggleAlarm {
			label[3] = onOffGlyph(a.alarm.Enabled)
		}
		f = a.renderChars(f, [4]rune{label[0], label[1], label[2], label[3]})

	case StateSetTime:
		f = a.renderBlinking(f, now, timeChars(t.Hour, t.Minute))

	case StateSetAlarm:
		f = a.renderBlinking(f, now, timeChars(a.alarm.Hour, a.alarm.Minute))

	case StatePlayingMelody:
		f = a.renderChars(f, timeChars(t.Hour, t.Minute))
		even := t.Second%2 == 0
		f.Colon = even
		f.Indicator = !even
	}

	return f
}

// renderBlinking shows chars with the setting-mode cadence: 800ms on,
// 200ms off, all digits forced blank in the off phase. The colon stays
// on throughout so the face never goes fully dark.
func (a *App) renderBlinking(f display.Frame, now time.Time, chars [4]rune) display.Frame {
	visible := now.UnixMilli()%1000 < blinkOn.Milliseconds()
	if visible {
		f = a.renderChars(f, chars)
	} else {
		f = a.renderChars(f, [4]rune{' ', ' ', ' ', ' '})
	}
	f.Colon = true
	f.Indicator = a.alarm.Enabled
	return f
}

func (a *App) renderChars(f display.Frame, chars [4]rune) display.Frame {
	for i, r := range chars {
		f.Slots[i].Pattern = segment.Encode(r)
	}
	a.lastText = string(chars[:])
	return f
}

func timeChars(hour, minute int) [4]rune {
	return [4]rune{
		rune('0' + hour/10),
		rune('0' + hour%10),
		rune('0' + minute/10),
		rune('0' + minute%10),
	}
}

func onOffGlyph(enabled bool) rune {
	if enabled {
		return 'o'
	}
	return '-'
}
