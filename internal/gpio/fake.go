package gpio

import "sync"

// FakeInput is a test double with a settable level and manual edge injection.
type FakeInput struct {
	mu      sync.Mutex
	level   bool
	handler func()

	// ReadErr, if set, will be returned by Value()
	ReadErr error
}

// NewFakeInput creates a FakeInput at the given logical level.
func NewFakeInput(asserted bool) *FakeInput {
	return &FakeInput{level: asserted}
}

// Value returns the current logical level.
func (f *FakeInput) Value() (bool, error) {
	if f.ReadErr != nil {
		return false, f.ReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level, nil
}

// OnEdge registers the edge handler.
func (f *FakeInput) OnEdge(fn func()) {
	f.mu.Lock()
	f.handler = fn
	f.mu.Unlock()
}

// SetLevel changes the level without firing an edge event.
func (f *FakeInput) SetLevel(asserted bool) {
	f.mu.Lock()
	f.level = asserted
	f.mu.Unlock()
}

// Drive changes the level and fires the edge handler, simulating a
// real transition on the line.
func (f *FakeInput) Drive(asserted bool) {
	f.mu.Lock()
	f.level = asserted
	fn := f.handler
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// TriggerEdge fires the edge handler without changing the level,
// simulating a spurious edge (contact bounce that settled back).
func (f *FakeInput) TriggerEdge() {
	f.mu.Lock()
	fn := f.handler
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// FakeOutput records every level written to it.
type FakeOutput struct {
	mu     sync.Mutex
	states []bool

	// SetErr, if set, will be returned by Set()
	SetErr error
}

// NewFakeOutput creates an empty FakeOutput.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// Set records the written level.
func (f *FakeOutput) Set(high bool) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	f.states = append(f.states, high)
	f.mu.Unlock()
	return nil
}

// States returns a copy of every level written so far.
func (f *FakeOutput) States() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bool, len(f.states))
	copy(out, f.states)
	return out
}

// Last returns the most recently written level, or false if none.
func (f *FakeOutput) Last() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.states) == 0 {
		return false
	}
	return f.states[len(f.states)-1]
}
