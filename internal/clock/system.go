package clock

import "time"

// SystemSource tracks the host clock plus an adjustable offset. Setting
// the time moves the offset; the host clock itself is never touched.
type SystemSource struct {
	offset time.Duration
}

// NewSystemSource creates a source aligned with the host clock.
func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

// Read returns the current local time.
func (s *SystemSource) Read() Time {
	t := time.Now().Add(s.offset)
	h, m, sec := t.Clock()
	return Time{Hour: h, Minute: m, Second: sec, Epoch: t.Unix()}
}

// SetEpoch moves the source to the given epoch second.
func (s *SystemSource) SetEpoch(epoch int64) {
	s.offset += time.Unix(epoch, 0).Sub(time.Now().Add(s.offset))
}
