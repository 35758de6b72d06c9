package logs

import "context"

type threadKey struct{}

var ThreadKey threadKey

func WithThread(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ThreadKey, id)
}
