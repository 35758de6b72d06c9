package scripts

import (
	"errors"
	"fmt"

	"github.com/reusee/tce/excs"
	"go.starlark.net/starlark"
)

const threadLocalKey = "tce.thread"

var ErrNoThread = errors.New("no exception thread bound to starlark thread")

func bindThread(thread *starlark.Thread, t *excs.Thread) {
	thread.SetLocal(threadLocalKey, t)
}

func threadOf(thread *starlark.Thread) (*excs.Thread, error) {
	t, ok := thread.Local(threadLocalKey).(*excs.Thread)
	if !ok {
		return nil, ErrNoThread
	}
	return t, nil
}

// Builtins are the predeclared names of every script.
//
//	throw(code)            raise code, code must be a nonzero int
//	code()                 pending code of the innermost protect
//	location()             dict of File, Function and Line of the last throw
//	leave(kind)            early exit: "return", "break" or "continue"
//	protect(body, catch={code: fn}, catch_if=[(pred, fn)], catch_all=fn, ensure=fn)
//
// protect returns "none" or the kind passed to leave. Handlers and
// predicates are called with the code. Clauses are tried in a fixed
// order whatever the order of the arguments: the catch entries in dict
// order, then catch_if in list order, then catch_all.
var Builtins = starlark.StringDict{
	"throw":    starlark.NewBuiltin("throw", throw),
	"code":     starlark.NewBuiltin("code", pendingCode),
	"location": starlark.NewBuiltin("location", location),
	"leave":    starlark.NewBuiltin("leave", leave),
	"protect":  starlark.NewBuiltin("protect", protect),
}

func throw(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var code int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &code); err != nil {
		return nil, err
	}
	if code == 0 {
		return nil, fmt.Errorf("%s: %w", b.Name(), excs.ErrZeroCode)
	}
	t, err := threadOf(thread)
	if err != nil {
		return nil, err
	}
	// frame 0 is the builtin itself
	caller := thread.CallFrame(1)
	t.RaiseAt(excs.Code(code), excs.Location{
		File:     caller.Pos.Filename(),
		Function: caller.Name,
		Line:     int(caller.Pos.Line),
	})
	return starlark.None, nil
}

func pendingCode(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	t, err := threadOf(thread)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(t.Code())), nil
}

func location(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	t, err := threadOf(thread)
	if err != nil {
		return nil, err
	}
	return toStarlarkValue(t.Location()), nil
}

func leave(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var kind string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &kind); err != nil {
		return nil, err
	}
	t, err := threadOf(thread)
	if err != nil {
		return nil, err
	}
	if t.Depth() == 0 {
		return nil, fmt.Errorf("%s: %w", b.Name(), excs.ErrNoFrame)
	}
	switch kind {
	case "return":
		t.Return()
	case "break":
		t.Break()
	case "continue":
		t.Continue()
	}
	return nil, fmt.Errorf("%s: unknown kind %q", b.Name(), kind)
}

func protect(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		body     starlark.Callable
		catches  *starlark.Dict
		catchIf  *starlark.List
		catchAll starlark.Callable
		ensure   starlark.Callable
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"body", &body,
		"catch?", &catches,
		"catch_if?", &catchIf,
		"catch_all?", &catchAll,
		"ensure?", &ensure,
	); err != nil {
		return nil, err
	}
	t, err := threadOf(thread)
	if err != nil {
		return nil, err
	}

	// a script error leaves the block like an early exit and is returned
	// to the interpreter
	var scriptErr error
	call := func(fn starlark.Callable, args ...starlark.Value) starlark.Value {
		ret, err := starlark.Call(thread, fn, args, nil)
		if err != nil {
			scriptErr = err
			t.Return()
		}
		return ret
	}
	handler := func(fn starlark.Callable) func(excs.Code) {
		return func(code excs.Code) {
			call(fn, starlark.MakeInt(int(code)))
		}
	}

	block := t.Try(func() {
		call(body)
	})

	if catches != nil {
		for _, item := range catches.Items() {
			var code int
			if err := starlark.AsInt(item[0], &code); err != nil {
				return nil, fmt.Errorf("%s: catch key: %w", b.Name(), err)
			}
			if code == 0 {
				return nil, fmt.Errorf("%s: catch key: %w", b.Name(), excs.ErrZeroCode)
			}
			fn, ok := item[1].(starlark.Callable)
			if !ok {
				return nil, fmt.Errorf("%s: catch %d: got %s, want callable", b.Name(), code, item[1].Type())
			}
			block.Catch(excs.Code(code), handler(fn))
		}
	}

	if catchIf != nil {
		for i := range catchIf.Len() {
			pair, ok := catchIf.Index(i).(starlark.Tuple)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("%s: catch_if[%d]: want (predicate, handler)", b.Name(), i)
			}
			pred, ok1 := pair[0].(starlark.Callable)
			fn, ok2 := pair[1].(starlark.Callable)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%s: catch_if[%d]: want callables", b.Name(), i)
			}
			block.CatchIf(func(code excs.Code) bool {
				return bool(call(pred, starlark.MakeInt(int(code))).Truth())
			}, handler(fn))
		}
	}

	if catchAll != nil {
		block.CatchAll(handler(catchAll))
	}

	if ensure != nil {
		block.Finally(func() {
			call(ensure)
		})
	}

	exit := block.End()
	if scriptErr != nil {
		return nil, scriptErr
	}
	return starlark.String(exit.String()), nil
}
