package melody

// Pitches used by the built-in tracks, in Hz.
const (
	Rest   = 0
	NoteC4 = 262
	NoteD4 = 294
	NoteE4 = 330
	NoteF4 = 349
	NoteG4 = 392
	NoteA4 = 440
	NoteB4 = 494
	NoteC5 = 523
	NoteA5 = 880
)

// TrackOne is the first selectable melody.
var TrackOne = Track{
	Name:  "ode",
	Tempo: 114,
	Notes: []Note{
		{NoteE4, 4}, {NoteE4, 4}, {NoteF4, 4}, {NoteG4, 4},
		{NoteG4, 4}, {NoteF4, 4}, {NoteE4, 4}, {NoteD4, 4},
		{NoteC4, 4}, {NoteC4, 4}, {NoteD4, 4}, {NoteE4, 4},
		{NoteE4, -4}, {NoteD4, 8}, {NoteD4, 2}, {Rest, 4},
	},
}

// TrackTwo is the second selectable melody.
var TrackTwo = Track{
	Name:  "twinkle",
	Tempo: 100,
	Notes: []Note{
		{NoteC4, 4}, {NoteC4, 4}, {NoteG4, 4}, {NoteG4, 4},
		{NoteA4, 4}, {NoteA4, 4}, {NoteG4, 2},
		{NoteF4, 4}, {NoteF4, 4}, {NoteE4, 4}, {NoteE4, 4},
		{NoteD4, 4}, {NoteD4, 4}, {NoteC4, 2}, {Rest, 4},
	},
}

// AlarmTrack is the designated wake-up melody: an insistent beep pattern.
var AlarmTrack = Track{
	Name:  "alarm",
	Tempo: 120,
	Notes: []Note{
		{NoteA5, 8}, {Rest, 8}, {NoteA5, 8}, {Rest, 8},
		{NoteA5, 8}, {Rest, 8}, {NoteA5, 8}, {Rest, 2},
	},
}
