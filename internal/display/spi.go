package display

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/OttoBos/Arduino-Alarmclock/internal/gpio"
)

// SPIBus shifts frames into the 74HC595 pair over SPI and pulses the
// latch line after both words are in.
type SPIBus struct {
	conn  spi.Conn
	latch gpio.OutputLine
}

// NewSPIBus connects to the shift chain on the given SPI port. latch is
// the register-clock line, idle low.
func NewSPIBus(port spi.Port, latch gpio.OutputLine) (*SPIBus, error) {
	conn, err := port.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("connect spi: %w", err)
	}
	return &SPIBus{conn: conn, latch: latch}, nil
}

// WriteWords shifts w2 then w1, MSB first, and latches both at once.
func (b *SPIBus) WriteWords(w2, w1 byte) error {
	if err := b.conn.Tx([]byte{w2, w1}, nil); err != nil {
		return fmt.Errorf("shift words: %w", err)
	}
	if err := b.latch.Set(true); err != nil {
		return fmt.Errorf("raise latch: %w", err)
	}
	if err := b.latch.Set(false); err != nil {
		return fmt.Errorf("drop latch: %w", err)
	}
	return nil
}

// Discard is a Bus that drops every frame. It stands in for the shift
// chain when the appliance runs without a display attached.
type Discard struct{}

// WriteWords discards the words.
func (Discard) WriteWords(w2, w1 byte) error { return nil }
