package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/reusee/tce/excs"
)

const (
	errNotFound excs.Code = iota + 1
	errDenied
	errTimeout
)

var (
	step    = color.New(color.FgCyan)
	caught  = color.New(color.FgGreen)
	cleanup = color.New(color.FgYellow)
)

func openResource(t *excs.Thread, name string) {
	switch name {
	case "missing":
		t.Raise(errNotFound)
	case "secret":
		t.Raise(errDenied)
	case "slow":
		t.Raise(errTimeout)
	}
}

// demo walks through the clause kinds, then lets an error escape.
func demo(t *excs.Thread, w io.Writer) {
	for _, name := range []string{"ok", "missing", "secret", "slow"} {
		exit := t.Try(func() {
			step.Fprintf(w, "open %s\n", name)
			openResource(t, name)
			if name == "ok" {
				t.Continue()
			}
		}).Catch(errNotFound, func(code excs.Code) {
			caught.Fprintf(w, "not found (%d)\n", code)
		}).CatchIf(func(code excs.Code) bool {
			return code >= errDenied && code < errTimeout
		}, func(code excs.Code) {
			caught.Fprintf(w, "denied (%d)\n", code)
		}).CatchAll(func(code excs.Code) {
			caught.Fprintf(w, "other error (%d)\n", code)
		}).Finally(func() {
			cleanup.Fprintf(w, "close %s\n", name)
		}).End()
		if exit == excs.ExitContinue {
			fmt.Fprintf(w, "%s opened, skipping cleanup\n", name)
		}
	}

	t.SetTerminateHandler(func(code excs.Code) {
		fmt.Fprintf(w, "terminating on %d\n", code)
	})
	t.Try(func() {
		openResource(t, "missing")
	}).Catch(errTimeout, nil).End()
}
