package decorate

import (
	"cmp"
	"context"
)

// AtLeast rejects calls whose designated argument is below min.
//
// field names the argument in the error; extract pulls it out of the call's
// arguments. A rejected call returns a *ValidationError and the inner layers
// and target never run. Accepted calls pass through unchanged.
func AtLeast[A, R any, N cmp.Ordered](field string, extract func(A) N, min N) Decorator[A, R] {
	return Hooks[A, R]{
		Label: "validate:" + field,
		Before: func(_ context.Context, args A) (Result[R], bool) {
			if v := extract(args); v < min {
				return Fail[R](&ValidationError{Field: field, Value: v, Min: min}), true
			}
			return Result[R]{}, false
		},
	}
}
