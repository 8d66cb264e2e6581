package decorate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/grimoire/log"
)

// RetryPolicy bounds how often the inner call is attempted.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts per outer call, at least 1.
	MaxAttempts int

	// Retryable decides whether a failure is worth another attempt.
	// Nil means DefaultRetryable.
	Retryable func(error) bool
}

// DefaultRetryable retries everything except validation failures and context cancellation.
func DefaultRetryable(err error) bool {
	return !errors.Is(err, ErrValidation) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidRetryPolicy, p.MaxAttempts)
	}
	return nil
}

func (p RetryPolicy) retryable(err error) bool {
	if p.Retryable == nil {
		return DefaultRetryable(err)
	}
	return p.Retryable(err)
}

type retry[A, R any] struct {
	policy   RetryPolicy
	logger   *zap.Logger
	sentinel func(*RetryExhaustedError) R
}

// Retry re-invokes the inner call while it fails with a retryable error,
// up to policy.MaxAttempts invocations in total.
//
// The first success is returned. A non-retryable failure is returned as is.
// When every attempt fails the caller gets a *RetryExhaustedError wrapping
// the last failure. If ctx is done between attempts, ctx.Err() is returned.
// Panics if the policy is invalid.
func Retry[A, R any](policy RetryPolicy, logger *zap.Logger) Decorator[A, R] {
	if err := policy.Validate(); err != nil {
		panic(err)
	}
	return retry[A, R]{policy: policy, logger: log.OrNop(logger)}
}

// RetryOrSentinel behaves like Retry, except that exhaustion yields sentinel's
// value with a nil error instead of a *RetryExhaustedError.
func RetryOrSentinel[A, R any](policy RetryPolicy, logger *zap.Logger, sentinel func(*RetryExhaustedError) R) Decorator[A, R] {
	if err := policy.Validate(); err != nil {
		panic(err)
	}
	if sentinel == nil {
		panic("RetryOrSentinel: nil sentinel")
	}
	return retry[A, R]{policy: policy, logger: log.OrNop(logger), sentinel: sentinel}
}

func (r retry[A, R]) Name() string { return "retry" }

func (r retry[A, R]) Wrap(next Func[A, R]) Func[A, R] {
	return func(ctx context.Context, args A) (R, error) {
		res, exhausted := r.attempt(ctx, args, next)
		if exhausted != nil {
			if r.sentinel != nil {
				return r.sentinel(exhausted), nil
			}
			return Fail[R](exhausted).Unwrap()
		}
		return res.Unwrap()
	}
}

// attempt runs the retry loop. A non-nil *RetryExhaustedError means every attempt failed.
func (r retry[A, R]) attempt(ctx context.Context, args A, next Func[A, R]) (Result[R], *RetryExhaustedError) {
	maxAttempts := r.policy.MaxAttempts
	var last Result[R]
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := ctx.Err(); err != nil {
				return Fail[R](err), nil
			}
		}

		last = resultOf(next(ctx, args))
		if !last.Failed() || !r.policy.retryable(last.Err) {
			return last, nil
		}
		if attempt < maxAttempts {
			r.logger.Warn("call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", maxAttempts),
				zap.Error(last.Err),
			)
		}
	}
	return last, &RetryExhaustedError{Attempts: maxAttempts, Last: last.Err}
}
