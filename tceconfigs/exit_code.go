package tceconfigs

import (
	"cmp"

	"github.com/reusee/tce/cmds"
	"github.com/reusee/tce/configs"
)

// ExitCode is the process status of an abort. Zero means the default.
type ExitCode int

var exitCodeFlag = cmds.Var[int]("-exit-code", "process exit code after an uncaught exception")

func (Module) ExitCode(
	loader configs.Loader,
) ExitCode {
	return ExitCode(cmp.Or(
		*exitCodeFlag,
		configs.First[int](loader, "exit_code"),
	))
}
