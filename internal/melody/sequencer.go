package melody

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OttoBos/Arduino-Alarmclock/internal/tone"
)

var notesSounded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "melody_notes_sounded_total",
	Help: "count of audible notes emitted to the tone generator",
})

// DefaultMaxPlay is the hard playback time limit.
const DefaultMaxPlay = 60 * time.Second

// Sequencer plays a Track through a tone.Player. It is driven from the
// foreground loop: Tick advances playback against the supplied time and
// never blocks.
type Sequencer struct {
	player  tone.Player
	maxPlay time.Duration

	track     Track
	index     int
	startedAt time.Time
	nextAt    time.Time
	playing   bool
}

// NewSequencer creates a Sequencer with the given playback limit.
func NewSequencer(player tone.Player, maxPlay time.Duration) *Sequencer {
	return &Sequencer{player: player, maxPlay: maxPlay}
}

// Start begins playing track from its first note.
func (s *Sequencer) Start(track Track, now time.Time) {
	s.track = track
	s.index = 0
	s.startedAt = now
	s.nextAt = now
	s.playing = true
}

// Playing reports whether a track is in progress.
func (s *Sequencer) Playing() bool { return s.playing }

// TrackName returns the name of the current track, or "" when idle.
func (s *Sequencer) TrackName() string {
	if !s.playing {
		return ""
	}
	return s.track.Name
}

// Tick advances playback. It returns true exactly once, when the
// playback time limit expires; the sequencer stops and silences the
// output at that point. The track itself loops until then.
func (s *Sequencer) Tick(now time.Time) bool {
	if !s.playing {
		return false
	}
	if now.Sub(s.startedAt) >= s.maxPlay {
		s.Stop()
		return true
	}
	if now.Before(s.nextAt) {
		return false
	}

	n := s.track.Notes[s.index]
	d := s.track.NoteDuration(n)
	if n.Freq > 0 {
		s.player.Play(n.Freq, SoundingDuration(d))
		notesSounded.Inc()
	}
	s.nextAt = now.Add(d)
	s.index++
	if s.index >= len(s.track.Notes) {
		s.index = 0
	}
	return false
}

// Stop cancels playback and silences the output. Safe to call when idle.
func (s *Sequencer) Stop() {
	if !s.playing {
		return
	}
	s.playing = false
	s.player.Stop()
}
