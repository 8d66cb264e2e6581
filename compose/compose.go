// Package compose builds new functions out of existing ones.
//
// These combinators carry no state of their own; anything stateful comes
// from the functions passed in.
package compose

import "github.com/on-the-ground/grimoire/shared/numeric"

// Then returns a function applying f and then g to its result.
func Then[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Amplify returns a decorator multiplying the result of fn by factor.
func Amplify[N numeric.Number](factor N) func(fn func(N) N) func(N) N {
	return func(fn func(N) N) func(N) N {
		return func(v N) N {
			return fn(v) * factor
		}
	}
}

// When applies fn only if cond holds for the input; otherwise the input is returned unchanged.
func When[T any](cond func(T) bool, fn func(T) T) func(T) T {
	return func(v T) T {
		if cond(v) {
			return fn(v)
		}
		return v
	}
}

// Pipe applies fns left to right. With no functions it is the identity.
func Pipe[T any](fns ...func(T) T) func(T) T {
	// copy so later mutation of the caller's slice cannot change the pipeline
	steps := append([]func(T) T(nil), fns...)
	return func(v T) T {
		for _, fn := range steps {
			v = fn(v)
		}
		return v
	}
}

// Partial fixes the first argument of a binary function.
func Partial[A, B, R any](fn func(A, B) R, a A) func(B) R {
	return func(b B) R {
		return fn(a, b)
	}
}

// Fold reduces xs from the left starting at zero.
func Fold[T, Acc any](xs []T, zero Acc, fn func(Acc, T) Acc) Acc {
	acc := zero
	for _, x := range xs {
		acc = fn(acc, x)
	}
	return acc
}
