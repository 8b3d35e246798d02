// Package tone is the boundary to the tone generator. The real player
// synthesizes a square wave on a buzzer line; tests use FakePlayer.
package tone

import "time"

// Player emits audible tones.
type Player interface {
	// Play sounds freqHz for at most d, replacing any tone in progress.
	Play(freqHz int, d time.Duration)

	// Stop silences the output immediately.
	Stop()
}
