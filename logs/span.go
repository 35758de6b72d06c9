package logs

import (
	"context"
	"crypto/rand"
)

type Span string

type spanKey struct{}

var SpanKey spanKey

type NewSpan func(ctx context.Context, name string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, name string) (context.Context, Span) {
		var args []any
		if v := ctx.Value(SpanKey); v != nil {
			args = append(args, "parent", v.(Span))
		}
		if name != "" {
			args = append(args, "name", name)
		}
		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		logger.InfoContext(ctx, "new span", args...)
		return ctx, span
	}
}
