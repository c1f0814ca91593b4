package optimize

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

	"golang.org/x/sync/errgroup"

	pkgerrors "skeleton/pkg/errors"
)

// Step is one stage of the optimize run.
type Step interface {
	Name() string
	Run(ctx context.Context, out io.Writer) error
}

// ShellStep runs a command line through "sh -c" and streams its output line
// by line. Stderr is also kept so a failure can report it.
type ShellStep struct {
	name    string
	command string
	dir     string
	env     []string
}

func NewShellStep(name, command, dir string, env ...string) *ShellStep {
	return &ShellStep{name: name, command: command, dir: dir, env: env}
}

func (s *ShellStep) Name() string    { return s.name }
func (s *ShellStep) Command() string { return s.command }

func (s *ShellStep) Run(ctx context.Context, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", s.command)
	cmd.Dir = s.dir
	if len(s.env) > 0 {
		cmd.Env = append(cmd.Environ(), s.env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return s.failure(err, "", -1)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return s.failure(err, "", -1)
	}

	if err := cmd.Start(); err != nil {
		return s.failure(err, "", -1)
	}

	sink := &lineWriter{out: out}
	var captured bytes.Buffer

	var g errgroup.Group
	g.Go(func() error { return stream(stdout, sink, nil) })
	g.Go(func() error { return stream(stderr, sink, &captured) })
	streamErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return s.failure(err, captured.String(), code)
	}
	if streamErr != nil {
		return s.failure(streamErr, captured.String(), 0)
	}
	return nil
}

func (s *ShellStep) failure(cause error, stderr string, code int) error {
	err := pkgerrors.ErrProcessFailed.
		WithCause(cause).
		WithDetail("step", s.name).
		WithDetail("command", s.command).
		WithDetail("exit_code", code).
		WithDetail("stderr", stderr)

	if msg := strings.TrimRight(stderr, "\r\n"); msg != "" {
		err = err.WithMessage(msg)
	}
	return err
}

func stream(r io.Reader, sink *lineWriter, capture *bytes.Buffer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if capture != nil {
			sink.capture(capture, line)
		}
		if err := sink.writeLine(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// lineWriter serialises whole lines from the stdout and stderr readers.
type lineWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *lineWriter) writeLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.out == nil {
		return nil
	}
	_, err := fmt.Fprintln(w.out, line)
	return err
}

func (w *lineWriter) capture(buf *bytes.Buffer, line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf.WriteString(line)
	buf.WriteByte('\n')
}
