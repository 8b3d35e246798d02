//go:build !linux

package gpio

import "errors"

// Chip is not available on non-Linux platforms.
type Chip struct{}

// OpenChip returns an error on non-Linux platforms.
func OpenChip(name string) (*Chip, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Input is not implemented on non-Linux platforms.
func (c *Chip) Input(offset int) (*RealInput, error) {
	return nil, errors.New("gpio: not supported")
}

// InputWithEdges is not implemented on non-Linux platforms.
func (c *Chip) InputWithEdges(offset int) (*RealInput, error) {
	return nil, errors.New("gpio: not supported")
}

// Output is not implemented on non-Linux platforms.
func (c *Chip) Output(offset int) (*RealOutput, error) {
	return nil, errors.New("gpio: not supported")
}

// Close is a no-op on non-Linux platforms.
func (c *Chip) Close() error { return nil }

// RealInput is not available on non-Linux platforms.
type RealInput struct{}

func (r *RealInput) Value() (bool, error) { return false, errors.New("gpio: not supported") }
func (r *RealInput) OnEdge(func())        {}

// RealOutput is not available on non-Linux platforms.
type RealOutput struct{}

func (r *RealOutput) Set(bool) error { return errors.New("gpio: not supported") }
