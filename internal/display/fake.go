package display

import "sync"

// WordPair is one recorded bus transmission, in wire order.
type WordPair struct {
	W2 byte // shifted first: segments + colon
	W1 byte // shifted second: overlays + digit select
}

// FakeBus is a test double that records every transmitted word pair.
type FakeBus struct {
	mu    sync.Mutex
	pairs []WordPair

	// WriteErr, if set, will be returned by WriteWords()
	WriteErr error
}

// NewFakeBus creates an empty FakeBus.
func NewFakeBus() *FakeBus {
	return &FakeBus{}
}

// WriteWords records the pair.
func (f *FakeBus) WriteWords(w2, w1 byte) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	f.pairs = append(f.pairs, WordPair{W2: w2, W1: w1})
	f.mu.Unlock()
	return nil
}

// Pairs returns a copy of every recorded transmission.
func (f *FakeBus) Pairs() []WordPair {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]WordPair, len(f.pairs))
	copy(out, f.pairs)
	return out
}

// Last returns the most recent transmission and whether one exists.
func (f *FakeBus) Last() (WordPair, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pairs) == 0 {
		return WordPair{}, false
	}
	return f.pairs[len(f.pairs)-1], true
}

// Reset discards all recorded transmissions.
func (f *FakeBus) Reset() {
	f.mu.Lock()
	f.pairs = nil
	f.mu.Unlock()
}
