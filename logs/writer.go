package logs

import (
	"io"
	"os"

	"github.com/reusee/tce/cmds"
)

var logFile = cmds.Var[string]("-log-file", "append text logs to this file")

// Writer receives text log records. It is stderr unless -log-file names a
// file to append to.
type Writer io.Writer

func (Module) Writer() Writer {
	if *logFile == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}
	return f
}
