package decorate

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/grimoire/log"
)

type timing[A, R any] struct {
	name   string
	clock  Clock
	logger *zap.Logger
	level  log.LogLevel
}

// Timing measures wall-clock time around the inner call and reports it to logger.
// The result and error of the inner call pass through untouched.
// A nil clock reads the system clock; a nil logger discards the diagnostics.
func Timing[A, R any](name string, clock Clock, logger *zap.Logger) Decorator[A, R] {
	return TimingAt[A, R](name, clock, logger, log.LogInfo)
}

// TimingAt is Timing with an explicit log level for its diagnostics.
func TimingAt[A, R any](name string, clock Clock, logger *zap.Logger, level log.LogLevel) Decorator[A, R] {
	return timing[A, R]{
		name:   name,
		clock:  clockOrSystem(clock),
		logger: log.OrNop(logger),
		level:  level,
	}
}

func (t timing[A, R]) Name() string { return "timing:" + t.name }

func (t timing[A, R]) Wrap(next Func[A, R]) Func[A, R] {
	return func(ctx context.Context, args A) (R, error) {
		callID := uuid.New().String()
		log.Emit(t.logger, t.level, "call started",
			zap.String("decorator", t.name),
			zap.String("call_id", callID),
		)

		start := t.clock.Now()
		res, err := next(ctx, args)
		span := measure(start, t.clock.Now())

		log.Emit(t.logger, t.level, "call completed",
			zap.String("decorator", t.name),
			zap.String("call_id", callID),
			zap.Time("started", span.Start()),
			zap.Duration("elapsed", span.Duration()),
			zap.Bool("failed", err != nil),
		)
		return res, err
	}
}
