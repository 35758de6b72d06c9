package scripts

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/reusee/tce/excs"
	"github.com/reusee/tce/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Stdout receives the output of print.
type Stdout io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

// Exec runs a script on a new exception thread. src is anything
// starlark.ExecFile accepts. An exception escaping every protect of the
// script ends the process through the terminate path.
type Exec func(
	ctx context.Context,
	filename string,
	src any,
	globals map[string]any,
) (starlark.StringDict, error)

func (Module) Exec(
	spawn excs.Spawn,
	newSpan logs.NewSpan,
	stdout Stdout,
) Exec {
	return func(
		ctx context.Context,
		filename string,
		src any,
		globals map[string]any,
	) (starlark.StringDict, error) {
		ctx, _ = newSpan(ctx, filename)
		thread := newThread(filename, spawn(ctx), stdout)
		ret, err := starlark.ExecFileOptions(
			fileOptions,
			thread,
			filename,
			src,
			predeclared(globals),
		)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		return ret, nil
	}
}

func newThread(name string, t *excs.Thread, stdout io.Writer) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(stdout, msg)
		},
	}
	bindThread(thread, t)
	return thread
}

func predeclared(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(Builtins)+len(globals))
	maps.Copy(ret, Builtins)
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
