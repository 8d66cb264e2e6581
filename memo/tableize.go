package memo

import (
	"context"

	"github.com/on-the-ground/grimoire/decorate"
)

// Memoize1 caches fn by its argument. Errors are returned but never cached.
// An argument that can not be keyed makes the call fail with ErrUnhashableArgument.
func Memoize1[I1, O any](fn func(I1) (O, error)) func(I1) (O, error) {
	cache := NewCache[O]()
	return func(i1 I1) (O, error) {
		key, err := KeyOf(i1)
		if err != nil {
			var zero O
			return zero, err
		}
		return cache.GetOrCompute(key, func() (O, error) {
			return fn(i1)
		})
	}
}

// Memoize2 is Memoize1 for two arguments.
func Memoize2[I1, I2, O any](fn func(I1, I2) (O, error)) func(I1, I2) (O, error) {
	cache := NewCache[O]()
	return func(i1 I1, i2 I2) (O, error) {
		key, err := KeyOf(i1, i2)
		if err != nil {
			var zero O
			return zero, err
		}
		return cache.GetOrCompute(key, func() (O, error) {
			return fn(i1, i2)
		})
	}
}

// Memoize3 is Memoize1 for three arguments.
func Memoize3[I1, I2, I3, O any](fn func(I1, I2, I3) (O, error)) func(I1, I2, I3) (O, error) {
	cache := NewCache[O]()
	return func(i1 I1, i2 I2, i3 I3) (O, error) {
		key, err := KeyOf(i1, i2, i3)
		if err != nil {
			var zero O
			return zero, err
		}
		return cache.GetOrCompute(key, func() (O, error) {
			return fn(i1, i2, i3)
		})
	}
}

// Tableize1 turns a pure, infallible function into a lookup table filled on demand.
// Panics if the argument can not be keyed.
func Tableize1[I1, O any](pureFn func(I1) O) func(I1) O {
	memoized := Memoize1(func(i1 I1) (O, error) {
		return pureFn(i1), nil
	})
	return func(i1 I1) O {
		return mustValue(memoized(i1))
	}
}

// Tableize2 is Tableize1 for two arguments.
func Tableize2[I1, I2, O any](pureFn func(I1, I2) O) func(I1, I2) O {
	memoized := Memoize2(func(i1 I1, i2 I2) (O, error) {
		return pureFn(i1, i2), nil
	})
	return func(i1 I1, i2 I2) O {
		return mustValue(memoized(i1, i2))
	}
}

func mustValue[O any](v O, err error) O {
	if err != nil {
		panic(err)
	}
	return v
}

// MemoizeNamed caches a function taking positional and named arguments.
// Named arguments given in any order hit the same entry.
func MemoizeNamed[O any](fn func(args []any, named map[string]any) (O, error)) func(args []any, named map[string]any) (O, error) {
	cache := NewCache[O]()
	return func(args []any, named map[string]any) (O, error) {
		key, err := NamedKeyOf(args, named)
		if err != nil {
			var zero O
			return zero, err
		}
		return cache.GetOrCompute(key, func() (O, error) {
			return fn(args, named)
		})
	}
}

type layer[A, R any] struct{}

// Layer returns a decorator that caches the inner call by its arguments.
// Every Wrap gets its own cache, so one Layer may wrap many targets.
// The context does not take part in the key.
func Layer[A, R any]() decorate.Decorator[A, R] {
	return layer[A, R]{}
}

func (l layer[A, R]) Name() string { return "memoize" }

func (l layer[A, R]) Wrap(next decorate.Func[A, R]) decorate.Func[A, R] {
	cache := NewCache[R]()
	return func(ctx context.Context, args A) (R, error) {
		key, err := KeyOf(args)
		if err != nil {
			var zero R
			return zero, err
		}
		return cache.GetOrCompute(key, func() (R, error) {
			return next(ctx, args)
		})
	}
}
