package excs

import "fmt"

// SetTerminateHandler installs hook to be called with the code of an error
// that escapes every protected block of the thread. A nil hook restores the
// default. The hook is expected not to return; if it does, the thread
// reports ErrHookReturned, prints the diagnostic and aborts anyway.
func (t *Thread) SetTerminateHandler(hook func(Code)) {
	t.hook = hook
}

func (t *Thread) terminate(code Code) {
	loc := t.location
	t.logger.ErrorContext(t.ctx, "uncaught exception",
		"code", int(code),
		"name", t.name(code),
		"file", loc.File,
		"func", loc.Function,
		"line", loc.Line,
	)

	// a raise escaping the hook itself must not call it again
	if t.hook != nil && !t.terminating {
		t.terminating = true
		func() {
			defer func() {
				t.terminating = false
			}()
			t.hook(code)
		}()
		t.logger.ErrorContext(t.ctx, ErrHookReturned.Error(),
			"code", int(code),
		)
	}

	fmt.Fprintf(t.diagnostic,
		"\n--- UNCAUGHT EXCEPTION ---\n"+
			"Error Code: %d\n"+
			"At -> %s\n"+
			"Func -> %s\n"+
			"Line -> %d\n"+
			"--- PROGRAM WILL ABORT ---\n",
		int(code), loc.File, loc.Function, loc.Line,
	)

	t.abort(code)
	panic(fmt.Errorf("%w: %d", ErrUncaught, int(code)))
}
