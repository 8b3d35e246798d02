// Package clock is the boundary to the wall-clock time source. The real
// source follows the host clock with a settable offset; tests use
// FakeSource. All methods are called from the foreground loop only.
package clock

// Time is a read-only snapshot of the time source.
type Time struct {
	Hour   int
	Minute int
	Second int
	Epoch  int64 // seconds
}

// Source provides wall-clock time and accepts set-to-epoch adjustments.
type Source interface {
	Read() Time
	SetEpoch(epoch int64)
}

func fromEpoch(epoch int64) Time {
	s := epoch % 86400
	if s < 0 {
		s += 86400
	}
	return Time{
		Hour:   int(s / 3600),
		Minute: int(s % 3600 / 60),
		Second: int(s % 60),
		Epoch:  epoch,
	}
}
