// Package shell runs recipe commands as child processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/creack/pty"
	"github.com/kballard/go-shellquote"
	"go.trai.ch/hekit/internal/core/domain"
	"go.trai.ch/hekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec, optionally through a PTY.
type Runner struct {
	logger ports.Logger

	mu     sync.RWMutex
	usePTY bool
	output io.Writer
}

var _ ports.CommandRunner = (*Runner)(nil)

// Option configures a Runner.
type Option func(*Runner)

// WithPTY runs commands attached to a pseudo-terminal.
func WithPTY(enable bool) Option {
	return func(r *Runner) { r.usePTY = enable }
}

// WithOutput copies the raw combined output of every command to w.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.output = w }
}

// NewRunner creates a Runner that logs command output line by line.
func NewRunner(logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetPTY switches PTY mode for subsequent commands.
func (r *Runner) SetPTY(enable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usePTY = enable
}

// Run executes cmd and waits for it to exit. A non-zero exit is reported in
// the Result, not as an error.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.Result, error) {
	if cmd.Empty() {
		return domain.OK, nil
	}

	args := cmd.Args
	if len(args) == 0 {
		var err error
		args, err = shellquote.Split(cmd.Line)
		if err != nil {
			return failed(), zerr.With(zerr.Wrap(err, domain.ErrCommandParseFailed.Error()), "command", cmd.Line)
		}
		if len(args) == 0 {
			return domain.OK, nil
		}
	}

	r.mu.RLock()
	usePTY, extra := r.usePTY, r.output
	r.mu.RUnlock()

	c := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // recipe commands are user provided
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)

	lw := &logWriter{logger: r.logger}
	var out io.Writer = lw
	if extra != nil {
		out = io.MultiWriter(lw, extra)
	}

	var err error
	if usePTY {
		err = runPTY(c, out)
	} else {
		err = runPipes(c, out)
	}
	_ = lw.Close()

	return interpret(ctx, args[0], cmd, err)
}

func runPipes(c *exec.Cmd, out io.Writer) error {
	// The same writer for both streams keeps stdout and stderr interleaved in order.
	c.Stdout = out
	c.Stderr = out
	if err := c.Start(); err != nil {
		return startError{err}
	}
	return c.Wait()
}

func runPTY(c *exec.Cmd, out io.Writer) error {
	ptmx, err := pty.Start(c)
	if err != nil {
		return startError{err}
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master fails with EIO once the child side closes.
		_, _ = io.Copy(out, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

type startError struct{ err error }

func (e startError) Error() string { return e.err.Error() }
func (e startError) Unwrap() error { return e.err }

func interpret(ctx context.Context, program string, cmd domain.Command, err error) (domain.Result, error) {
	if err == nil {
		return domain.OK, nil
	}

	var se startError
	if errors.As(err, &se) {
		werr := zerr.With(zerr.Wrap(se.err, domain.ErrCommandStartFailed.Error()), "program", program)
		if cmd.Dir != "" {
			werr = zerr.With(werr, "dir", cmd.Dir)
		}
		return failed(), werr
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return failed(), zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "program", program)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return domain.Result{Success: false, Code: exitErr.ExitCode()}, nil
	}
	return failed(), zerr.With(zerr.Wrap(err, "command failed"), "program", program)
}

func failed() domain.Result {
	return domain.Result{Success: false, Code: -1}
}

// mergeEnv layers overrides over the inherited environment.
func mergeEnv(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}
	env := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if _, overridden := overrides[k]; ok && overridden {
			continue
		}
		env = append(env, entry)
	}
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		env = append(env, k+"="+overrides[k])
	}
	return env
}

// logWriter forwards complete lines of output to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}
