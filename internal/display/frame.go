// Package display drives a four-digit 7-segment display through a pair of
// daisy-chained shift registers. The foreground loop writes a Frame; a
// high-rate refresh goroutine scans it one digit at a time, dimming by
// duty cycle.
package display

import "sync/atomic"

const (
	// NumDigits is the number of digit positions on the face.
	NumDigits = 4

	// MaxIntensity is the brightest duty-cycle setting. A digit is lit
	// for intensity+1 of the subTicksPerDigit sub-ticks in its dwell.
	MaxIntensity = 10

	subTicksPerDigit = 11
)

// Slot is the content of one digit position.
type Slot struct {
	Pattern byte // segment bits A..G (see internal/segment)
	Dot     bool // decimal point
}

// Frame is the full display content plus global overlays.
type Frame struct {
	Slots     [NumDigits]Slot
	Colon     bool
	Indicator bool
	Intensity int // 0..MaxIntensity
}

// Shared holds the Frame crossing from the foreground loop to the
// refresh goroutine. It packs the whole frame into one 64-bit cell so a
// reader can never observe a half-updated overlay.
type Shared struct {
	cell atomic.Uint64
}

const (
	packColon     = 1 << 0
	packIndicator = 1 << 1
)

// Store publishes f atomically.
func (s *Shared) Store(f Frame) {
	var v uint64
	for i, slot := range f.Slots {
		b := uint64(slot.Pattern & 0x7F)
		if slot.Dot {
			b |= 0x80
		}
		v |= b << (8 * i)
	}
	var flags uint64
	if f.Colon {
		flags |= packColon
	}
	if f.Indicator {
		flags |= packIndicator
	}
	v |= flags << 32

	in := f.Intensity
	if in < 0 {
		in = 0
	} else if in > MaxIntensity {
		in = MaxIntensity
	}
	v |= uint64(in) << 40

	s.cell.Store(v)
}

// Load returns the most recently stored Frame.
func (s *Shared) Load() Frame {
	v := s.cell.Load()
	var f Frame
	for i := range f.Slots {
		b := byte(v >> (8 * i))
		f.Slots[i].Pattern = b & 0x7F
		f.Slots[i].Dot = b&0x80 != 0
	}
	flags := v >> 32
	f.Colon = flags&packColon != 0
	f.Indicator = flags&packIndicator != 0
	f.Intensity = int(v>>40) & 0x0F
	return f
}
