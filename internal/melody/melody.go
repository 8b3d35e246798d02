// Package melody turns fixed scores into timed tone commands.
package melody

import "time"

// Note is one scored note: a pitch in Hz (0 = rest) and a duration code.
// Positive codes divide a whole note (4 = quarter); negative codes are
// dotted, extending the base duration by half.
type Note struct {
	Freq int
	Code int
}

// Track is an immutable melody score.
type Track struct {
	Name  string
	Tempo int // beats per minute
	Notes []Note
}

// Wholenote returns the duration of a 4-beat whole note at the track tempo.
func (t Track) Wholenote() time.Duration {
	return time.Duration(240000/t.Tempo) * time.Millisecond
}

// NoteDuration returns the full duration of n, including its share of
// inter-note silence.
func (t Track) NoteDuration(n Note) time.Duration {
	whole := t.Wholenote()
	if n.Code > 0 {
		return whole / time.Duration(n.Code)
	}
	if n.Code < 0 {
		return whole / time.Duration(-n.Code) * 3 / 2
	}
	return 0
}

// SoundingDuration returns the audible part of a note: 90% of its full
// duration, the rest left silent to separate consecutive notes.
func SoundingDuration(d time.Duration) time.Duration {
	return d * 9 / 10
}
