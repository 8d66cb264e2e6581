package decorate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys set by Traced.
const (
	AttrDecorated = "grimoire.decorated"
	AttrFailed    = "grimoire.failed"
)

type traced[A, R any] struct {
	tracer   trace.Tracer
	spanName string
}

// Traced opens a span named spanName around every call and marks failures on it.
// If tracer is nil the returned decorator passes calls straight through.
func Traced[A, R any](tracer trace.Tracer, spanName string) Decorator[A, R] {
	return traced[A, R]{tracer: tracer, spanName: spanName}
}

func (t traced[A, R]) Name() string { return "trace:" + t.spanName }

func (t traced[A, R]) Wrap(next Func[A, R]) Func[A, R] {
	if t.tracer == nil {
		return next
	}
	return func(ctx context.Context, args A) (R, error) {
		ctx, span := t.tracer.Start(ctx, t.spanName,
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()
		span.SetAttributes(attribute.String(AttrDecorated, t.spanName))

		res, err := next(ctx, args)

		span.SetAttributes(attribute.Bool(AttrFailed, err != nil))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return res, err
	}
}
