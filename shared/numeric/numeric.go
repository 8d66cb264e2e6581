// Package numeric holds the type constraints shared by the arithmetic closures and combinators.
package numeric

// Integer is satisfied by every built-in integer kind and types derived from them.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is satisfied by the built-in floating point kinds.
type Float interface {
	~float32 | ~float64
}

// Number is anything that supports + and *.
type Number interface {
	Integer | Float
}
