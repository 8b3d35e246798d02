// Package gpio provides GPIO line access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// InputLine reads one digital input.
type InputLine interface {
	// Value returns the logical level of the line. All inputs are
	// active-low with pull-ups: raw low = logical true (asserted).
	Value() (bool, error)
}

// EdgeLine is an input that delivers edge events to a handler.
// The handler runs on the GPIO event goroutine, not the main loop.
type EdgeLine interface {
	InputLine

	// OnEdge registers the handler called on every level transition.
	// It replaces any previously registered handler.
	OnEdge(func())
}

// OutputLine drives one digital output. true = driven high.
type OutputLine interface {
	Set(bool) error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinEncoderA = 17 // rotary encoder phase A
	DefaultPinEncoderB = 27 // rotary encoder phase B
	DefaultPinButton   = 22 // encoder push button
	DefaultPinLatch    = 25 // shift register latch (RCLK)
	DefaultPinBuzzer   = 12 // piezo buzzer
)
