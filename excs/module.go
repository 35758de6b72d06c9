package excs

import (
	"context"
	"os"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tce/logs"
	"github.com/reusee/tce/modes"
	"github.com/reusee/tce/tceconfigs"
)

type Module struct {
	dscope.Module
	Configs tceconfigs.Module
}

// Abort ends the process after an uncaught exception was reported.
type Abort func(code Code)

func (Module) Abort(
	mode modes.Mode,
	t *testing.T,
	exitCode tceconfigs.ExitCode,
) Abort {
	if mode == modes.ModeDevelopment && t != nil {
		return func(code Code) {
			t.Fatalf("uncaught exception: %d", int(code))
		}
	}
	status := int(exitCode)
	if status == 0 {
		status = DefaultExitCode
	}
	return func(Code) {
		os.Exit(status)
	}
}

// Spawn creates a thread for the calling goroutine.
type Spawn func(ctx context.Context) *Thread

func (Module) Spawn(
	logger logs.Logger,
	abort Abort,
	diagnostic tceconfigs.Diagnostic,
	codeNames tceconfigs.CodeNames,
) Spawn {
	names := make(map[Code]string, len(codeNames))
	for code, name := range codeNames {
		names[Code(code)] = name
	}
	return func(ctx context.Context) *Thread {
		return NewThread(&Options{
			Context:    ctx,
			Logger:     logger,
			Diagnostic: diagnostic,
			Abort:      abort,
			Names:      names,
		})
	}
}
