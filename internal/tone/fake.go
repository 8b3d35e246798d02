package tone

import (
	"sync"
	"time"
)

// Command is one recorded player call. A zero Freq records a Stop.
type Command struct {
	Freq     int
	Duration time.Duration
}

// FakePlayer is a test double that records every tone command.
type FakePlayer struct {
	mu       sync.Mutex
	commands []Command
}

// NewFakePlayer creates an empty FakePlayer.
func NewFakePlayer() *FakePlayer {
	return &FakePlayer{}
}

// Play records the tone command.
func (f *FakePlayer) Play(freqHz int, d time.Duration) {
	f.mu.Lock()
	f.commands = append(f.commands, Command{Freq: freqHz, Duration: d})
	f.mu.Unlock()
}

// Stop records a silence command.
func (f *FakePlayer) Stop() {
	f.mu.Lock()
	f.commands = append(f.commands, Command{})
	f.mu.Unlock()
}

// Commands returns a copy of every recorded command.
func (f *FakePlayer) Commands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Command, len(f.commands))
	copy(out, f.commands)
	return out
}

// Last returns the most recent command and whether one exists.
func (f *FakePlayer) Last() (Command, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) == 0 {
		return Command{}, false
	}
	return f.commands[len(f.commands)-1], true
}

// Tones returns only the audible commands (Freq > 0).
func (f *FakePlayer) Tones() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Command
	for _, c := range f.commands {
		if c.Freq > 0 {
			out = append(out, c)
		}
	}
	return out
}
