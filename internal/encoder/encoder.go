// Package encoder decodes a quadrature rotary encoder with a push
// button. The two phase handlers run on GPIO event goroutines; the
// foreground loop consumes at most one step per iteration.
package encoder

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/OttoBos/Arduino-Alarmclock/internal/gpio"
)

var (
	stepsCW = promauto.NewCounter(prometheus.CounterOpts{
		Name: "encoder_steps_cw_total",
		Help: "count of accepted clockwise encoder steps",
	})
	stepsCCW = promauto.NewCounter(prometheus.CounterOpts{
		Name: "encoder_steps_ccw_total",
		Help: "count of accepted counter-clockwise encoder steps",
	})
	buttonPresses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "encoder_button_presses_total",
		Help: "count of accepted (debounced) button presses",
	})
)

// DefaultSettle is the wait after an edge before the line is re-read.
// Transitions that do not survive it are contact bounce and are dropped.
const DefaultSettle = 120 * time.Microsecond

// Decoder tracks the two phase lines and accumulates signed steps.
type Decoder struct {
	a      gpio.InputLine
	b      gpio.InputLine
	settle time.Duration

	mu     sync.Mutex
	phaseA bool
	phaseB bool

	steps atomic.Int32
}

// NewDecoder creates a Decoder over the two phase lines. The stored
// phase state is seeded from the current line levels.
func NewDecoder(a, b gpio.InputLine, settle time.Duration) *Decoder {
	d := &Decoder{a: a, b: b, settle: settle}
	if v, err := a.Value(); err == nil {
		d.phaseA = v
	}
	if v, err := b.Value(); err == nil {
		d.phaseB = v
	}
	return d
}

// EdgeA handles an edge event on phase A. A step is counted when A
// transitions while B is held closed.
func (d *Decoder) EdgeA() {
	time.Sleep(d.settle)
	v, err := d.a.Value()
	if err != nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if v == d.phaseA {
		return // bounce: the level settled back
	}
	d.phaseA = v
	if d.phaseB {
		d.steps.Add(1)
		stepsCW.Inc()
	}
}

// EdgeB handles an edge event on phase B. A step is counted when B
// transitions while A is held closed.
func (d *Decoder) EdgeB() {
	time.Sleep(d.settle)
	v, err := d.b.Value()
	if err != nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if v == d.phaseB {
		return
	}
	d.phaseB = v
	if d.phaseA {
		d.steps.Add(-1)
		stepsCCW.Inc()
	}
}

// TakeStep consumes the accumulated steps, resetting them to zero, and
// returns only the sign: -1, 0 or +1. Steps accumulated beyond one per
// foreground iteration collapse into a single step.
func (d *Decoder) TakeStep() int {
	n := d.steps.Swap(0)
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Button reads the push button by level polling with a cooldown, so one
// physical press yields one event.
type Button struct {
	line     gpio.InputLine
	cooldown time.Duration
	lastAt   time.Time
}

// DefaultCooldown is the minimum spacing between accepted presses.
const DefaultCooldown = 500 * time.Millisecond

// NewButton creates a Button on the given line.
func NewButton(line gpio.InputLine, cooldown time.Duration) *Button {
	return &Button{line: line, cooldown: cooldown}
}

// Pressed reports whether a new press is observed at now. While the
// button is held, or within the cooldown of the last accepted press, it
// reports false.
func (b *Button) Pressed(now time.Time) bool {
	v, err := b.line.Value()
	if err != nil || !v {
		return false
	}
	if !b.lastAt.IsZero() && now.Sub(b.lastAt) < b.cooldown {
		return false
	}
	b.lastAt = now
	buttonPresses.Inc()
	return true
}
