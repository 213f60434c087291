package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine. The handler gets a fresh
// background context carrying the caller's logger, so it outlives the
// request that triggered it. Panics and returned errors are logged.
//
// done, when not nil, is called after the handler returns or panics.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error, done ...func()) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
			for _, fn := range done {
				fn()
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("error in async handler", "error", err)
		}
	}()
}

// newBackgroundContext detaches ctx from its cancellation, keeping the logger
func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
