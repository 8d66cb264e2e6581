package closure

import (
	"sync"

	"github.com/on-the-ground/grimoire/shared/numeric"
)

// Counter counts how many times Next has been called.
//
// The count is an int. Passing math.MaxInt calls is not reachable in
// practice; if it ever happened the value would wrap.
type Counter struct {
	mu sync.Mutex
	n  int
}

func NewCounter() *Counter {
	return &Counter{}
}

// Next increments the count and returns the new value, starting at 1.
func (c *Counter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

// MakeCounter returns the Next operation of a fresh Counter.
func MakeCounter() func() int {
	return NewCounter().Next
}

// Accumulator keeps a running total.
type Accumulator[N numeric.Number] struct {
	mu    sync.Mutex
	total N
}

func NewAccumulator[N numeric.Number](initial N) *Accumulator[N] {
	return &Accumulator[N]{total: initial}
}

// Add applies delta and returns the running total: initial plus every delta so far.
func (a *Accumulator[N]) Add(delta N) N {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.total += delta
	return a.total
}

// MakeAccumulator returns the Add operation of a fresh Accumulator.
func MakeAccumulator[N numeric.Number](initial N) func(N) N {
	return NewAccumulator(initial).Add
}
