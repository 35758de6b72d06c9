package excs

// Frame is the runtime record of one active protected block.
type Frame struct {
	pending      Code
	handled      bool
	finallyRan   bool
	rethrowDepth int
	enclosing    *Frame
}

// catchable reports whether catch clauses may look at the pending code.
// Only a raise from the block body qualifies; raises from a handler or
// from the finally clause of the same frame go outward.
func (f *Frame) catchable() bool {
	return f.pending != NoCode &&
		!f.handled &&
		!f.finallyRan &&
		f.rethrowDepth == 1
}

func (f *Frame) commit() Code {
	code := f.pending
	f.pending = NoCode
	f.handled = true
	return code
}

// run calls fn with f as the resume point.
// Signals targeted at other frames and foreign panics pass through.
func (f *Frame) run(fn func()) (exit Exit) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		sig, ok := p.(*signal)
		if !ok || sig.frame != f {
			panic(p)
		}
		exit = sig.exit
	}()
	fn()
	return ExitNone
}
