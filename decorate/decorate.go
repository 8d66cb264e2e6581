// Package decorate layers cross-cutting behavior around a function without changing its signature.
//
// A target is any Func. Decorate wraps it in an ordered list of Decorators:
// the first decorator is the outermost layer, so its before-logic runs
// first and its after-logic runs last.
//
//	cast := decorate.Decorate(target,
//	    decorate.Timing[Spell, string]("cast", nil, logger),
//	    decorate.Retry[Spell, string](decorate.RetryPolicy{MaxAttempts: 3}, logger),
//	    decorate.AtLeast[Spell, string]("power", Spell.Power, 10),
//	)
//
// Here Timing measures the whole retrying and validating sequence, not just
// the last attempt.
package decorate

import "context"

// Func is the calling contract every decorator preserves.
type Func[A, R any] func(ctx context.Context, args A) (R, error)

// Decorator wraps a Func in another Func of the same shape.
type Decorator[A, R any] interface {
	// Name identifies the decorator in diagnostics.
	Name() string
	Wrap(next Func[A, R]) Func[A, R]
}

// Decorate composes decorators around target. decorators[0] becomes the outermost layer.
// The order is fixed here and applies to every call of the returned Func.
func Decorate[A, R any](target Func[A, R], decorators ...Decorator[A, R]) Func[A, R] {
	fn := target
	for i := len(decorators) - 1; i >= 0; i-- {
		fn = decorators[i].Wrap(fn)
	}
	return fn
}

// Names lists decorator names from outermost to innermost.
func Names[A, R any](decorators ...Decorator[A, R]) []string {
	names := make([]string, len(decorators))
	for i, d := range decorators {
		names[i] = d.Name()
	}
	return names
}

// Result is the outcome of one layer: a value or a failure.
type Result[R any] struct {
	Value R
	Err   error
}

func Ok[R any](v R) Result[R] {
	return Result[R]{Value: v}
}

func Fail[R any](err error) Result[R] {
	return Result[R]{Err: err}
}

func resultOf[R any](v R, err error) Result[R] {
	return Result[R]{Value: v, Err: err}
}

// Unwrap returns the result in Go's (value, error) form.
func (r Result[R]) Unwrap() (R, error) {
	return r.Value, r.Err
}

// Failed reports whether the result carries an error.
func (r Result[R]) Failed() bool {
	return r.Err != nil
}

// Hooks is a Decorator assembled from a before and an after hook. Either hook may be nil.
//
// Before runs ahead of the inner call. When it reports stop, its Result is
// returned at once: no inner layer runs, the target is not invoked and this
// layer's After is skipped. Layers further out see that Result as the
// ordinary outcome of their inner call.
//
// After receives the inner Result and returns what propagates outward.
type Hooks[A, R any] struct {
	Label  string
	Before func(ctx context.Context, args A) (res Result[R], stop bool)
	After  func(ctx context.Context, args A, res Result[R]) Result[R]
}

func (h Hooks[A, R]) Name() string {
	return h.Label
}

func (h Hooks[A, R]) Wrap(next Func[A, R]) Func[A, R] {
	return func(ctx context.Context, args A) (R, error) {
		if h.Before != nil {
			if res, stop := h.Before(ctx, args); stop {
				return res.Unwrap()
			}
		}
		res := resultOf(next(ctx, args))
		if h.After != nil {
			res = h.After(ctx, args, res)
		}
		return res.Unwrap()
	}
}
