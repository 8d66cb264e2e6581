package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/on-the-ground/grimoire/decorate"
)

var decoratorsCmd = &cobra.Command{
	Use:   "decorators",
	Short: "Timing, validation, retry and tracing layers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecorators(cmd.Context(), env)
	},
}

type cast struct {
	Spell string
	Power int
}

var errFizzled = errors.New("spell fizzled")

func runDecorators(ctx context.Context, r *runtime) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fireball := func(_ context.Context, c cast) (string, error) {
		time.Sleep(10 * time.Millisecond)
		return fmt.Sprintf("%s cast with power %d", c.Spell, c.Power), nil
	}

	timed := decorate.Decorate(fireball,
		decorate.Traced[cast, string](r.tracer, "fireball"),
		decorate.Timing[cast, string]("fireball", nil, r.logger),
	)
	out, err := timed(ctx, cast{Spell: "Fireball", Power: 42})
	if err != nil {
		return err
	}
	r.printf("%s\n", out)

	guarded := decorate.Decorate(fireball,
		decorate.AtLeast[cast, string]("power", func(c cast) int { return c.Power }, r.cfg.Validation.MinPower),
	)
	for _, power := range []int{r.cfg.Validation.MinPower - 1, r.cfg.Validation.MinPower + 5} {
		out, err := guarded(ctx, cast{Spell: "Lightning", Power: power})
		if errors.Is(err, decorate.ErrValidation) {
			r.printf("Insufficient power for this spell\n")
			continue
		}
		if err != nil {
			return err
		}
		r.printf("%s\n", out)
	}

	// fails until the last configured attempt
	attempts := 0
	flaky := func(_ context.Context, c cast) (string, error) {
		attempts++
		if attempts < r.cfg.Retry.MaxAttempts {
			return "", errFizzled
		}
		return fmt.Sprintf("%s succeeded on attempt %d", c.Spell, attempts), nil
	}
	retried := decorate.Decorate(flaky,
		decorate.Traced[cast, string](r.tracer, "unstable"),
		decorate.Retry[cast, string](decorate.RetryPolicy{MaxAttempts: r.cfg.Retry.MaxAttempts}, r.logger),
	)
	out, err = retried(ctx, cast{Spell: "Unstable Portal", Power: 15})
	var exhausted *decorate.RetryExhaustedError
	switch {
	case errors.As(err, &exhausted):
		r.printf("gave up after %d attempts: %v\n", exhausted.Attempts, exhausted.Last)
	case err != nil:
		return err
	default:
		r.printf("%s\n", out)
	}
	return nil
}
