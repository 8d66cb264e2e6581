// Package closure provides factories for functions that carry private, mutable state.
//
// Each factory returns a small struct that owns its state exclusively and
// exposes exactly one operation that reads and mutates it. The Make* variants
// return that operation as a plain func value, so callers hold nothing but
// the function:
//
//	next := closure.MakeCounter()
//	next() // 1
//	next() // 2
//
// State is never shared between instances and is never readable except
// through the values the operation returns. Every instance guards its state
// with its own mutex, so a single instance may be called from several
// goroutines.
//
// Inputs are trusted. Validation belongs in a decorate pipeline in front of
// the function, not here.
package closure
