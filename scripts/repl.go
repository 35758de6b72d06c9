package scripts

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/tce/excs"
	"github.com/reusee/tce/logs"
	"go.starlark.net/repl"
)

// Repl reads and runs statements from the terminal on one exception
// thread until EOF.
type Repl func(ctx context.Context, globals map[string]any)

func (Module) Repl(
	logger logs.Logger,
	spawn excs.Spawn,
	stdout Stdout,
) Repl {
	return func(ctx context.Context, globals map[string]any) {
		logger.InfoContext(ctx, "repl",
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "repl end")
		}()
		thread := newThread("repl", spawn(ctx), stdout)
		repl.REPLOptions(fileOptions, thread, predeclared(globals))
	}
}
