package excs

import (
	"bytes"
	"log/slog"
	"testing"
)

type aborted Code

type testEnv struct {
	diagnostic *bytes.Buffer
	logs       *bytes.Buffer
}

func newTestThread(t *testing.T) (*Thread, *testEnv) {
	t.Helper()
	env := &testEnv{
		diagnostic: new(bytes.Buffer),
		logs:       new(bytes.Buffer),
	}
	thread := NewThread(&Options{
		Logger: slog.New(slog.NewTextHandler(env.logs, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		Diagnostic: env.diagnostic,
		Abort: func(code Code) {
			panic(aborted(code))
		},
	})
	return thread, env
}

// expectAbort runs fn and returns the code passed to the abort func.
func expectAbort(t *testing.T, fn func()) (code Code) {
	t.Helper()
	ok := false
	func() {
		defer func() {
			p := recover()
			if a, is := p.(aborted); is {
				code = Code(a)
				ok = true
				return
			}
			if p != nil {
				panic(p)
			}
		}()
		fn()
	}()
	if !ok {
		t.Fatal("should abort")
	}
	return
}
