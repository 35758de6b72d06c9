package main

import (
	"context"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/reusee/dscope"
	"github.com/reusee/tce/cmds"
	"github.com/reusee/tce/excs"
	"github.com/reusee/tce/modes"
	"github.com/reusee/tce/scripts"
)

var (
	runFiles = cmds.Collect[string]("run", "run a script file, may repeat")
	jobs     = cmds.Var[int]("-jobs", "scripts to run at once")
	doRepl   = cmds.Switch("repl", "interactive shell")
	doDemo   = cmds.Switch("demo", "run the built-in demo")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(scripts.Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		run scripts.RunFiles,
		repl scripts.Repl,
		spawn excs.Spawn,
	) {
		switch {

		case len(*runFiles) > 0:
			n := *jobs
			if n == 0 {
				n = runtime.NumCPU()
			}
			if err := run(ctx, *runFiles, n); err != nil {
				color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
				os.Exit(1)
			}
			color.New(color.FgGreen).Fprintf(os.Stderr, "%d script(s) ok\n", len(*runFiles))

		case *doRepl:
			repl(ctx, nil)

		case *doDemo:
			demo(spawn(ctx), os.Stdout)

		default:
			cmds.GlobalExecutor.PrintUsage()
		}
	})
}
