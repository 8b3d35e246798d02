package clock

// FakeSource is a test double with a manually controlled epoch.
type FakeSource struct {
	epoch int64
}

// NewFakeSource creates a FakeSource set to the given wall-clock time.
func NewFakeSource(hour, minute, second int) *FakeSource {
	return &FakeSource{epoch: int64(hour)*3600 + int64(minute)*60 + int64(second)}
}

// Read returns the current fake time.
func (f *FakeSource) Read() Time {
	return fromEpoch(f.epoch)
}

// SetEpoch moves the fake clock to the given epoch second.
func (f *FakeSource) SetEpoch(epoch int64) {
	f.epoch = epoch
}

// Advance moves the fake clock forward by the given number of seconds.
func (f *FakeSource) Advance(seconds int64) {
	f.epoch += seconds
}
