package tceconfigs

import (
	"cmp"
	"fmt"
	"io"
	"os"

	"github.com/reusee/tce/cmds"
	"github.com/reusee/tce/configs"
)

// Diagnostic receives the report printed for an uncaught exception.
type Diagnostic io.Writer

var diagnosticFlag = cmds.Var[string]("-diagnostic", "stdout or stderr")

func (Module) Diagnostic(
	loader configs.Loader,
) Diagnostic {
	switch name := cmp.Or(
		*diagnosticFlag,
		configs.First[string](loader, "diagnostic"),
		"stdout",
	); name {
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		panic(fmt.Errorf("unknown diagnostic output: %s", name))
	}
}
