package display

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "display_refresh_ticks_total",
		Help: "count of display refresh ticks executed",
	})
	busWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "display_bus_write_errors_total",
		Help: "count of failed writes to the display shift chain",
	})
)

// Bus transmits one display frame: two 8-bit words, already inverted for
// the active-low hardware, latched together after both have shifted.
type Bus interface {
	WriteWords(w2, w1 byte) error
}

// Word 2 (shifted first): segment bits A..G in bits 0..6, colon in bit 7.
const wordColon byte = 1 << 7

// Word 1 (shifted second): overlays in the low nibble, digit select
// one-hot in the high nibble.
const (
	wordDot       byte = 1 << 0
	wordColonPair byte = 1 << 1 // wired against the digit-3 position
	wordIndicator byte = 1 << 2 // wired against the digit-4 position
	selectShift        = 4
)

// Multiplexer scans the shared Frame across the four digit positions.
// Tick is the only method that may run concurrently with the foreground
// loop; it must be called from a single goroutine.
type Multiplexer struct {
	frame *Shared
	bus   Bus

	digit int
	sub   int
}

// NewMultiplexer creates a Multiplexer reading frames from shared and
// emitting them on bus.
func NewMultiplexer(shared *Shared, bus Bus) *Multiplexer {
	return &Multiplexer{frame: shared, bus: bus}
}

// Tick emits one sub-tick of the scan. For sub-ticks 0..intensity the
// active digit's content is driven; for the rest a blank pattern is
// driven with the same digit still selected, which dims the display by
// duty cycle. After 11 sub-ticks the digit index advances cyclically.
func (m *Multiplexer) Tick() error {
	f := m.frame.Load()

	var w2, w1 byte
	if m.sub <= f.Intensity {
		slot := f.Slots[m.digit]
		w2 = slot.Pattern & 0x7F
		if f.Colon {
			w2 |= wordColon
			w1 |= wordColonPair
		}
		if slot.Dot {
			w1 |= wordDot
		}
		if f.Indicator {
			w1 |= wordIndicator
		}
	}
	w1 |= byte(1) << (selectShift + m.digit)

	m.sub++
	if m.sub >= subTicksPerDigit {
		m.sub = 0
		m.digit++
		if m.digit >= NumDigits {
			m.digit = 0
		}
	}

	refreshTicks.Inc()
	// Active-low outputs: invert both words before transmission.
	if err := m.bus.WriteWords(^w2, ^w1); err != nil {
		busWriteErrors.Inc()
		return err
	}
	return nil
}

// Blank turns every output off, deselecting all digits.
func (m *Multiplexer) Blank() error {
	return m.bus.WriteWords(^byte(0), ^byte(0))
}

// Run scans the display at the given period until ctx is cancelled,
// then blanks it. Bus write failures are counted and the scan keeps
// going.
func (m *Multiplexer) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Blank()
			return ctx.Err()
		case <-ticker.C:
			m.Tick() // errors already counted
		}
	}
}
