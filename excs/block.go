package excs

type clause struct {
	match   func(Code) bool
	handler func(Code)
}

// Block is a protected block under construction. Clauses are evaluated in
// the order they are added; nothing runs until End.
type Block struct {
	thread  *Thread
	body    func()
	clauses []clause
	finally func()
}

// Try starts a protected block running body.
func (t *Thread) Try(body func()) *Block {
	return &Block{
		thread: t,
		body:   body,
	}
}

// Catch handles the pending error if it equals code.
func (b *Block) Catch(code Code, handler func(Code)) *Block {
	if code == NoCode {
		panic(ErrZeroCode)
	}
	return b.CatchIf(func(pending Code) bool {
		return pending == code
	}, handler)
}

// CatchIf handles the pending error if pred reports true for it.
func (b *Block) CatchIf(pred func(Code) bool, handler func(Code)) *Block {
	b.clauses = append(b.clauses, clause{
		match:   pred,
		handler: handler,
	})
	return b
}

// CatchAll handles any pending error not matched by an earlier clause.
func (b *Block) CatchAll(handler func(Code)) *Block {
	return b.CatchIf(func(Code) bool {
		return true
	}, handler)
}

// Finally sets the clause that runs once whichever way the block is left,
// except through Return, Break or Continue.
func (b *Block) Finally(fn func()) *Block {
	b.finally = fn
	return b
}

// End runs the block. An error still pending after the catch clauses and
// the finally clause is raised again in the enclosing block.
func (b *Block) End() (exit Exit) {
	t := b.thread
	f := t.push()
	retired := false
	defer func() {
		if !retired {
			// foreign panic passing through
			t.pop(f)
		}
	}()

	exit = f.run(b.body)
	// raises from defers of the body replace the signal in flight, and
	// all of them still belong to the body
	if f.pending != NoCode {
		f.rethrowDepth = 1
	}

	if exit == ExitNone && f.catchable() {
		exit = f.run(func() {
			b.catch(f)
		})
	}

	if exit == ExitNone && b.finally != nil && !f.finallyRan {
		f.finallyRan = true
		exit = f.run(b.finally)
	}

	t.pop(f)
	retired = true
	if exit != ExitNone {
		return exit
	}

	if f.pending != NoCode {
		t.logger.DebugContext(t.ctx, "escalate",
			"code", int(f.pending),
			"name", t.name(f.pending),
			"depth", t.depth,
		)
		t.dispatch(f.pending)
	}

	return ExitNone
}

func (b *Block) catch(f *Frame) {
	t := b.thread
	for _, c := range b.clauses {
		if !c.match(f.pending) {
			continue
		}
		code := f.commit()
		t.logger.DebugContext(t.ctx, "catch",
			"code", int(code),
			"name", t.name(code),
			"depth", t.depth,
		)
		if c.handler != nil {
			c.handler(code)
		}
		return
	}
}
