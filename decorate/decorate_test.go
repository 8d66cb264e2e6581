package decorate_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/on-the-ground/grimoire/decorate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

type spell struct {
	Name  string
	Power int
}

func power(s spell) int { return s.Power }

var errFizzle = errors.New("spell fizzled")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// flaky fails its first failures calls and then succeeds.
func flaky(failures int) (decorate.Func[spell, string], *int) {
	calls := 0
	return func(_ context.Context, s spell) (string, error) {
		calls++
		if calls <= failures {
			return "", fmt.Errorf("attempt %d: %w", calls, errFizzle)
		}
		return "cast " + s.Name, nil
	}, &calls
}

func recordingHooks(label string, trail *[]string) decorate.Hooks[spell, string] {
	return decorate.Hooks[spell, string]{
		Label: label,
		Before: func(context.Context, spell) (decorate.Result[string], bool) {
			*trail = append(*trail, label+".before")
			return decorate.Result[string]{}, false
		},
		After: func(_ context.Context, _ spell, res decorate.Result[string]) decorate.Result[string] {
			*trail = append(*trail, label+".after")
			return res
		},
	}
}

func TestDecorate_NoDecoratorsIsTarget(t *testing.T) {
	target, calls := flaky(0)
	fn := decorate.Decorate(target)
	res, err := fn(context.Background(), spell{Name: "heal"})
	require.NoError(t, err)
	assert.Equal(t, "cast heal", res)
	assert.Equal(t, 1, *calls)
}

func TestDecorate_OuterBeforeFirstOuterAfterLast(t *testing.T) {
	var trail []string
	target := func(context.Context, spell) (string, error) {
		trail = append(trail, "target")
		return "ok", nil
	}
	fn := decorate.Decorate[spell, string](target,
		recordingHooks("outer", &trail),
		recordingHooks("inner", &trail),
	)

	for i := 0; i < 2; i++ {
		trail = nil
		_, err := fn(context.Background(), spell{})
		require.NoError(t, err)
		assert.Equal(t, []string{"outer.before", "inner.before", "target", "inner.after", "outer.after"}, trail)
	}
}

func TestHooks_ShortCircuitSkipsInnerLayers(t *testing.T) {
	var trail []string
	stopper := decorate.Hooks[spell, string]{
		Label: "stopper",
		Before: func(context.Context, spell) (decorate.Result[string], bool) {
			trail = append(trail, "stopper.before")
			return decorate.Ok("not today"), true
		},
		After: func(_ context.Context, _ spell, res decorate.Result[string]) decorate.Result[string] {
			trail = append(trail, "stopper.after")
			return res
		},
	}
	target, calls := flaky(0)
	fn := decorate.Decorate[spell, string](target,
		recordingHooks("outer", &trail),
		stopper,
		recordingHooks("inner", &trail),
	)

	res, err := fn(context.Background(), spell{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not today", res)
	assert.Equal(t, 0, *calls)
	assert.Equal(t, []string{"outer.before", "stopper.before", "outer.after"}, trail)
}

func TestHooks_AfterTransformsResult(t *testing.T) {
	upper := decorate.Hooks[spell, string]{
		Label: "shout",
		After: func(_ context.Context, _ spell, res decorate.Result[string]) decorate.Result[string] {
			if res.Failed() {
				return res
			}
			return decorate.Ok(res.Value + "!")
		},
	}
	target, _ := flaky(0)
	res, err := decorate.Decorate[spell, string](target, upper)(context.Background(), spell{Name: "bolt"})
	require.NoError(t, err)
	assert.Equal(t, "cast bolt!", res)
}

func TestNames(t *testing.T) {
	names := decorate.Names[spell, string](
		decorate.Timing[spell, string]("cast", nil, nil),
		decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 2}, nil),
		decorate.AtLeast[spell, string]("power", power, 5),
	)
	assert.Equal(t, []string{"timing:cast", "retry", "validate:power"}, names)
}

func TestAtLeast_BelowMinimumShortCircuits(t *testing.T) {
	target, calls := flaky(0)
	fn := decorate.Decorate(target, decorate.AtLeast[spell, string]("power", power, 5))

	_, err := fn(context.Background(), spell{Name: "spark", Power: 4})
	require.Error(t, err)
	assert.Equal(t, 0, *calls)
	assert.ErrorIs(t, err, decorate.ErrValidation)
	assert.NotErrorIs(t, err, decorate.ErrRetryExhausted)

	var verr *decorate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "power", verr.Field)
	assert.Equal(t, 4, verr.Value)
	assert.Equal(t, 5, verr.Min)
}

func TestAtLeast_AcceptedCallIsUnchanged(t *testing.T) {
	target, calls := flaky(0)
	fn := decorate.Decorate(target, decorate.AtLeast[spell, string]("power", power, 5))

	res, err := fn(context.Background(), spell{Name: "lightning", Power: 7})
	require.NoError(t, err)
	assert.Equal(t, "cast lightning", res)
	assert.Equal(t, 1, *calls)

	_, err = fn(context.Background(), spell{Name: "edge", Power: 5})
	assert.NoError(t, err)
}

func TestProperty_RetrySucceedsWithinBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 8).Draw(t, "k")

		target, calls := flaky(k - 1)
		fn := decorate.Decorate(target, decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: k}, nil))
		res, err := fn(context.Background(), spell{Name: "orb"})
		if err != nil {
			t.Fatalf("max=%d: unexpected error %v", k, err)
		}
		if res != "cast orb" || *calls != k {
			t.Fatalf("max=%d: got %q after %d calls", k, res, *calls)
		}
	})
}

func TestProperty_RetryExhaustsBelowBudget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(2, 8).Draw(t, "k")

		target, calls := flaky(k - 1)
		fn := decorate.Decorate(target, decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: k - 1}, nil))
		_, err := fn(context.Background(), spell{Name: "orb"})

		var exhausted *decorate.RetryExhaustedError
		if !errors.As(err, &exhausted) {
			t.Fatalf("max=%d: want RetryExhaustedError, got %v", k-1, err)
		}
		if exhausted.Attempts != k-1 || *calls != k-1 {
			t.Fatalf("max=%d: attempts=%d calls=%d", k-1, exhausted.Attempts, *calls)
		}
		if !errors.Is(err, errFizzle) || errors.Is(err, decorate.ErrValidation) {
			t.Fatalf("wrong error chain: %v", err)
		}
		if want := fmt.Sprintf("attempt %d: %v", k-1, errFizzle); exhausted.Last.Error() != want {
			t.Fatalf("last failure: got %q, want %q", exhausted.Last, want)
		}
	})
}

func TestRetry_LogsEachRetry(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	target, _ := flaky(2)
	fn := decorate.Decorate(target, decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 3}, zap.New(core)))

	_, err := fn(context.Background(), spell{})
	require.NoError(t, err)

	retries := logs.FilterMessage("call failed, retrying").AllUntimed()
	require.Len(t, retries, 2)
	assert.Equal(t, int64(1), retries[0].ContextMap()["attempt"])
	assert.Equal(t, int64(2), retries[1].ContextMap()["attempt"])
	assert.Equal(t, int64(3), retries[1].ContextMap()["max_attempts"])
}

func TestRetry_DoesNotRetryValidationFailures(t *testing.T) {
	target, calls := flaky(0)
	fn := decorate.Decorate(target,
		decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 5}, nil),
		decorate.AtLeast[spell, string]("power", power, 10),
	)
	_, err := fn(context.Background(), spell{Power: 1})
	assert.ErrorIs(t, err, decorate.ErrValidation)
	assert.NotErrorIs(t, err, decorate.ErrRetryExhausted)
	assert.Equal(t, 0, *calls)
}

func TestRetry_CustomRetryable(t *testing.T) {
	target, calls := flaky(3)
	policy := decorate.RetryPolicy{
		MaxAttempts: 5,
		Retryable:   func(error) bool { return false },
	}
	_, err := decorate.Decorate(target, decorate.Retry[spell, string](policy, nil))(context.Background(), spell{})
	assert.ErrorIs(t, err, errFizzle)
	assert.NotErrorIs(t, err, decorate.ErrRetryExhausted)
	assert.Equal(t, 1, *calls)
}

func TestRetry_StopsWhenContextIsDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	target := func(context.Context, spell) (string, error) {
		calls++
		cancel()
		return "", errFizzle
	}
	_, err := decorate.Decorate(target, decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 5}, nil))(ctx, spell{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryOrSentinel(t *testing.T) {
	target, calls := flaky(10)
	fn := decorate.Decorate(target, decorate.RetryOrSentinel[spell, string](
		decorate.RetryPolicy{MaxAttempts: 3},
		nil,
		func(e *decorate.RetryExhaustedError) string {
			return fmt.Sprintf("Spell casting failed after %d attempts", e.Attempts)
		},
	))
	res, err := fn(context.Background(), spell{})
	require.NoError(t, err)
	assert.Equal(t, "Spell casting failed after 3 attempts", res)
	assert.Equal(t, 3, *calls)
}

func TestRetry_InvalidPolicyPanics(t *testing.T) {
	assert.Panics(t, func() {
		decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 0}, nil)
	})
	assert.ErrorIs(t, decorate.RetryPolicy{MaxAttempts: -1}.Validate(), decorate.ErrInvalidRetryPolicy)
}

func TestTiming_ReportsElapsedAndKeepsResult(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	clock := newFakeClock()
	target := func(_ context.Context, s spell) (string, error) {
		clock.Advance(100 * time.Millisecond)
		return "Fireball cast!", nil
	}
	fn := decorate.Decorate(target, decorate.Timing[spell, string]("fireball", clock, zap.New(core)))

	res, err := fn(context.Background(), spell{})
	require.NoError(t, err)
	assert.Equal(t, "Fireball cast!", res)

	started := logs.FilterMessage("call started").AllUntimed()
	completed := logs.FilterMessage("call completed").AllUntimed()
	require.Len(t, started, 1)
	require.Len(t, completed, 1)
	assert.Equal(t, "fireball", completed[0].ContextMap()["decorator"])
	assert.Equal(t, 100*time.Millisecond, completed[0].ContextMap()["elapsed"])
	assert.Equal(t, false, completed[0].ContextMap()["failed"])
	assert.Equal(t, started[0].ContextMap()["call_id"], completed[0].ContextMap()["call_id"])
}

func TestTiming_PassesErrorsThrough(t *testing.T) {
	target, _ := flaky(1)
	_, err := decorate.Decorate(target, decorate.Timing[spell, string]("x", newFakeClock(), nil))(context.Background(), spell{})
	assert.ErrorIs(t, err, errFizzle)
}

func TestTiming_OutsideRetryMeasuresEveryAttempt(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	clock := newFakeClock()
	calls := 0
	target := func(context.Context, spell) (string, error) {
		calls++
		clock.Advance(10 * time.Millisecond)
		if calls < 3 {
			return "", errFizzle
		}
		return "done", nil
	}
	fn := decorate.Decorate(target,
		decorate.Timing[spell, string]("cast", clock, zap.New(core)),
		decorate.Retry[spell, string](decorate.RetryPolicy{MaxAttempts: 3}, nil),
		decorate.AtLeast[spell, string]("power", power, 5),
	)

	res, err := fn(context.Background(), spell{Power: 7})
	require.NoError(t, err)
	assert.Equal(t, "done", res)

	completed := logs.FilterMessage("call completed").AllUntimed()
	require.Len(t, completed, 1)
	assert.Equal(t, 30*time.Millisecond, completed[0].ContextMap()["elapsed"])
}

func TestTraced_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = provider.Shutdown(context.Background()) }()
	tracer := provider.Tracer("grimoire-test")

	target, _ := flaky(1)
	fn := decorate.Decorate(target, decorate.Traced[spell, string](tracer, "cast"))

	_, err := fn(context.Background(), spell{})
	require.Error(t, err)
	_, err = fn(context.Background(), spell{})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "cast", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
}

func TestTraced_NilTracerPassesThrough(t *testing.T) {
	target, calls := flaky(0)
	res, err := decorate.Decorate(target, decorate.Traced[spell, string](nil, "cast"))(context.Background(), spell{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "cast a", res)
	assert.Equal(t, 1, *calls)
}
