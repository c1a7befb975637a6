package execx

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

const tailLimit = 64 * 1024

// Result is the captured outcome of one process execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external tools. Implementations must stop the process
// when ctx is cancelled.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	// Stream behaves like Run but also hands every output line, from stdout
	// and stderr, to onLine as it is produced. Carriage returns split lines.
	Stream(ctx context.Context, onLine func(line string), name string, args ...string) (Result, error)
}

// CommandError describes a process that could not start or exited non-zero.
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	detail := LastLine(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Name, e.ExitCode, detail)
}

func (e *CommandError) Unwrap() error { return e.Err }

// OSRunner runs commands through os/exec.
type OSRunner struct{}

func New() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return finish(ctx, name, args, stdout.String(), tail(stderr.String()), err)
}

func (r *OSRunner) Stream(ctx context.Context, onLine func(line string), name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, &CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, &CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, &CommandError{Name: name, Args: args, ExitCode: -1, Err: err}
	}

	var (
		mu             sync.Mutex
		stdout, stderr tailBuffer
		wg             sync.WaitGroup
	)
	consume := func(rd io.Reader, buf *tailBuffer) {
		defer wg.Done()
		sc := bufio.NewScanner(rd)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		sc.Split(ScanLines)
		for sc.Scan() {
			line := sc.Text()
			mu.Lock()
			buf.writeLine(line)
			if onLine != nil {
				onLine(line)
			}
			mu.Unlock()
		}
	}
	wg.Add(2)
	go consume(stdoutPipe, &stdout)
	go consume(stderrPipe, &stderr)
	wg.Wait()

	err = cmd.Wait()
	return finish(ctx, name, args, stdout.String(), stderr.String(), err)
}

func finish(ctx context.Context, name string, args []string, stdout, stderr string, err error) (Result, error) {
	res := Result{Stdout: stdout, Stderr: stderr}
	if err == nil {
		return res, nil
	}
	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return res, &CommandError{Name: name, Args: args, ExitCode: res.ExitCode, Stderr: stderr, Err: err}
}

// ScanLines is a bufio.SplitFunc that treats \n, \r\n and bare \r as line
// terminators, which is how progress bars redraw.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			advance++
		} else if data[i] == '\r' && i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// LastLine returns the last non-empty line of s.
func LastLine(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}

type tailBuffer struct {
	b strings.Builder
}

func (t *tailBuffer) writeLine(line string) {
	t.b.WriteString(line)
	t.b.WriteByte('\n')
	if t.b.Len() > 2*tailLimit {
		s := tail(t.b.String())
		t.b.Reset()
		t.b.WriteString(s)
	}
}

func (t *tailBuffer) String() string {
	return tail(t.b.String())
}

func tail(s string) string {
	if len(s) <= tailLimit {
		return s
	}
	return s[len(s)-tailLimit:]
}
