package excs

import "context"

type threadKey struct{}

func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, t)
}

// ThreadFrom returns the thread stored by WithThread, or nil.
func ThreadFrom(ctx context.Context) *Thread {
	t, _ := ctx.Value(threadKey{}).(*Thread)
	return t
}
