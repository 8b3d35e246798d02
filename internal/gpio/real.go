//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// Chip owns the GPIO character device and every line requested from it.
type Chip struct {
	chip  *gpiocdev.Chip
	lines []interface{ Close() error }
}

// OpenChip opens the named GPIO character device (e.g. "gpiochip0").
func OpenChip(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	return &Chip{chip: chip}, nil
}

// Input requests the line at offset as a pull-up input.
func (c *Chip) Input(offset int) (*RealInput, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", offset, err)
	}
	in := &RealInput{line: line}
	c.lines = append(c.lines, line)
	return in, nil
}

// InputWithEdges requests the line at offset as a pull-up input that
// reports both edges. Register the consumer with OnEdge; events arriving
// before a handler is set are dropped.
func (c *Chip) InputWithEdges(offset int) (*RealInput, error) {
	in := &RealInput{}
	line, err := c.chip.RequestLine(offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { in.fireEdge() }),
	)
	if err != nil {
		return nil, fmt.Errorf("request edge pin %d: %w", offset, err)
	}
	in.line = line
	c.lines = append(c.lines, line)
	return in, nil
}

// Output requests the line at offset as an output, initially low.
func (c *Chip) Output(offset int) (*RealOutput, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", offset, err)
	}
	out := &RealOutput{line: line}
	c.lines = append(c.lines, line)
	return out, nil
}

// Close releases every requested line, then the chip itself.
func (c *Chip) Close() error {
	var errs []error
	for _, l := range c.lines {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealInput reads a line from actual hardware.
type RealInput struct {
	line *gpiocdev.Line

	mu      sync.Mutex
	handler func()
}

// Value returns the logical level.
// Inverts raw GPIO: raw low (0) = logical true, matching the pull-up wiring.
func (r *RealInput) Value() (bool, error) {
	raw, err := r.line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin: %w", err)
	}
	return raw == 0, nil
}

// OnEdge registers the edge handler.
func (r *RealInput) OnEdge(fn func()) {
	r.mu.Lock()
	r.handler = fn
	r.mu.Unlock()
}

func (r *RealInput) fireEdge() {
	r.mu.Lock()
	fn := r.handler
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// RealOutput drives a line on actual hardware.
type RealOutput struct {
	line *gpiocdev.Line
}

// Set drives the line high (true) or low (false).
func (r *RealOutput) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	if err := r.line.SetValue(v); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}
