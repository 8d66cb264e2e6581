package memo

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrNegativeIndex = errors.New("fibonacci index must not be negative")
	ErrOverflow      = errors.New("fibonacci number overflows uint64")
)

// maxFibIndex is the largest n whose Fibonacci number fits in a uint64.
const maxFibIndex = 93

// Fibonacci computes Fibonacci numbers through a memoized entry point that
// the recursion itself calls, so every index is computed at most once.
type Fibonacci struct {
	of           func(int) (uint64, error)
	computations atomic.Int64
}

func NewFibonacci() *Fibonacci {
	f := &Fibonacci{}
	f.of = Memoize1(f.compute)
	return f
}

// Of returns the n-th Fibonacci number, with Of(0) = 0 and Of(1) = 1.
func (f *Fibonacci) Of(n int) (uint64, error) {
	return f.of(n)
}

// Computations counts how many times the underlying recurrence ran, cache hits excluded.
func (f *Fibonacci) Computations() int64 {
	return f.computations.Load()
}

func (f *Fibonacci) compute(n int) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeIndex, n)
	}
	if n > maxFibIndex {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, n)
	}
	f.computations.Add(1)
	if n < 2 {
		return uint64(n), nil
	}
	a, err := f.of(n - 1)
	if err != nil {
		return 0, err
	}
	b, err := f.of(n - 2)
	if err != nil {
		return 0, err
	}
	return a + b, nil
}
