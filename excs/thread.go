package excs

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/reusee/tce/logs"
)

// DefaultExitCode is the process status used by the default abort, the
// same status a shell reports for SIGABRT.
const DefaultExitCode = 134

type Options struct {
	Context    context.Context // if nil, default to context.Background()
	Logger     *slog.Logger    // if nil, records are discarded
	Diagnostic io.Writer       // if nil, default to os.Stdout
	Abort      func(Code)      // if nil, exit with DefaultExitCode
	Names      map[Code]string // names used in log records
}

// Thread owns the frame stack, the diagnostic record and the terminate hook
// of one execution unit. A Thread must only be used by the goroutine that
// runs its blocks.
type Thread struct {
	id          string
	ctx         context.Context
	logger      *slog.Logger
	diagnostic  io.Writer
	abort       func(Code)
	names       map[Code]string
	top         *Frame
	depth       int
	location    Location
	hook        func(Code)
	terminating bool
}

func NewThread(opts *Options) *Thread {
	if opts == nil {
		opts = new(Options)
	}
	t := &Thread{
		id:         uuid.NewString(),
		ctx:        opts.Context,
		logger:     opts.Logger,
		diagnostic: opts.Diagnostic,
		abort:      opts.Abort,
		names:      opts.Names,
	}
	if t.ctx == nil {
		t.ctx = context.Background()
	}
	t.ctx = logs.WithThread(t.ctx, t.id)
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	if t.diagnostic == nil {
		t.diagnostic = os.Stdout
	}
	if t.abort == nil {
		t.abort = func(Code) {
			os.Exit(DefaultExitCode)
		}
	}
	return t
}

func (t *Thread) ID() string {
	return t.id
}

// Depth returns the number of active protected blocks.
func (t *Thread) Depth() int {
	return t.depth
}

// Code returns the pending code of the innermost protected block, or NoCode.
func (t *Thread) Code() Code {
	if t.top == nil {
		return NoCode
	}
	return t.top.pending
}

// Location returns where the most recent raise happened.
func (t *Thread) Location() Location {
	return t.location
}

func (t *Thread) push() *Frame {
	f := &Frame{
		enclosing: t.top,
	}
	t.top = f
	t.depth++
	return f
}

func (t *Thread) pop(f *Frame) {
	t.top = f.enclosing
	t.depth--
}

func (t *Thread) name(code Code) string {
	if name, ok := t.names[code]; ok {
		return name
	}
	return ""
}
