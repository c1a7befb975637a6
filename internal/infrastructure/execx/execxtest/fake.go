// Package execxtest provides a scripted execx.Runner for adapter tests.
package execxtest

import (
	"context"
	"sync"

	"github.com/bnema/clipr/internal/infrastructure/execx"
)

type Call struct {
	Name string
	Args []string
}

// Reply is what a scripted command produces. Lines are delivered to the
// Stream callback before the call returns.
type Reply struct {
	Result execx.Result
	Lines  []string
	Err    error
}

// Runner answers every call with Handler and records it.
type Runner struct {
	Handler func(ctx context.Context, call Call) Reply

	mu    sync.Mutex
	calls []Call
}

func (r *Runner) Run(ctx context.Context, name string, args ...string) (execx.Result, error) {
	reply := r.record(ctx, name, args)
	return reply.Result, reply.Err
}

func (r *Runner) Stream(ctx context.Context, onLine func(line string), name string, args ...string) (execx.Result, error) {
	reply := r.record(ctx, name, args)
	if onLine != nil {
		for _, l := range reply.Lines {
			onLine(l)
		}
	}
	return reply.Result, reply.Err
}

func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *Runner) record(ctx context.Context, name string, args []string) Reply {
	call := Call{Name: name, Args: append([]string(nil), args...)}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	if r.Handler == nil {
		return Reply{}
	}
	return r.Handler(ctx, call)
}

// Fail builds a Reply for a non-zero exit with the given stderr.
func Fail(name string, code int, stderr string) Reply {
	return Reply{
		Result: execx.Result{Stderr: stderr, ExitCode: code},
		Err:    &execx.CommandError{Name: name, ExitCode: code, Stderr: stderr},
	}
}
