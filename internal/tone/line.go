package tone

import (
	"sync"
	"time"

	"github.com/OttoBos/Arduino-Alarmclock/internal/gpio"
)

// LinePlayer drives a piezo buzzer line with a software square wave.
// One toggling goroutine runs per tone; starting a new tone or calling
// Stop cancels it.
type LinePlayer struct {
	line gpio.OutputLine

	mu     sync.Mutex
	cancel chan struct{}
}

// NewLinePlayer creates a player on the given buzzer line.
func NewLinePlayer(line gpio.OutputLine) *LinePlayer {
	return &LinePlayer{line: line}
}

// Play sounds freqHz for at most d. Frequencies <= 0 silence instead.
func (p *LinePlayer) Play(freqHz int, d time.Duration) {
	p.Stop()
	if freqHz <= 0 || d <= 0 {
		return
	}

	half := time.Second / time.Duration(2*freqHz)
	cancel := make(chan struct{})
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		deadline := time.Now().Add(d)
		level := false
		for time.Now().Before(deadline) {
			select {
			case <-cancel:
				return
			default:
			}
			level = !level
			if err := p.line.Set(level); err != nil {
				return
			}
			time.Sleep(half)
		}
		p.line.Set(false)
	}()
}

// Stop silences the output immediately.
func (p *LinePlayer) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		close(p.cancel)
		p.cancel = nil
	}
	p.mu.Unlock()
	p.line.Set(false)
}
