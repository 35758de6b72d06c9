package excs

// Raise signals code to the innermost protected block of the thread.
// It never returns: control resumes in the block's catch clauses, or the
// terminate path runs when no block is active. Raising NoCode panics with
// ErrZeroCode.
func (t *Thread) Raise(code Code) {
	if code == NoCode {
		panic(ErrZeroCode)
	}
	t.location = callerLocation(1)
	t.dispatch(code)
}

// RaiseAt is like Raise but records loc as the raise location. Front-ends
// use it to report positions in their own sources.
func (t *Thread) RaiseAt(code Code, loc Location) {
	if code == NoCode {
		panic(ErrZeroCode)
	}
	t.location = loc
	t.dispatch(code)
}

func (t *Thread) dispatch(code Code) {
	f := t.top
	if f == nil {
		t.terminate(code)
		return
	}
	f.rethrowDepth++
	f.pending = code
	t.logger.DebugContext(t.ctx, "raise",
		"code", int(code),
		"name", t.name(code),
		"depth", t.depth,
		"rethrow", f.rethrowDepth,
	)
	panic(&signal{
		frame: f,
	})
}
