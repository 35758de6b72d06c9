package excs

// Exit tells the caller of Block.End how the block was left.
type Exit uint8

const (
	ExitNone Exit = iota
	ExitReturn
	ExitBreak
	ExitContinue
)

func (e Exit) String() string {
	switch e {
	case ExitNone:
		return "none"
	case ExitReturn:
		return "return"
	case ExitBreak:
		return "break"
	case ExitContinue:
		return "continue"
	}
	return "unknown"
}

// Return leaves the innermost protected block without running its finally
// clause. End reports ExitReturn and the caller is expected to return.
// Cleanup normally deferred to finally must be done before calling it.
func (t *Thread) Return() {
	t.escape(ExitReturn)
}

// Break is like Return, End reports ExitBreak.
func (t *Thread) Break() {
	t.escape(ExitBreak)
}

// Continue is like Return, End reports ExitContinue.
func (t *Thread) Continue() {
	t.escape(ExitContinue)
}

func (t *Thread) escape(exit Exit) {
	if t.top == nil {
		panic(ErrNoFrame)
	}
	t.logger.DebugContext(t.ctx, "escape",
		"exit", exit,
		"depth", t.depth,
	)
	panic(&signal{
		frame: t.top,
		exit:  exit,
	})
}
