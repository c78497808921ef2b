// Package probes wraps the external OS probes (pgrep, lsof) behind an
// injectable command runner so probe-dependent components stay testable
// without spawning processes.
package probes

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"entrain/internal/logging"
)

// DefaultTimeout bounds every local process probe. A probe that exceeds
// it is killed and treated as a failed probe for this cycle, not retried.
const DefaultTimeout = 5 * time.Second

// Runner executes one external command and returns its stdout.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec. The zero value is ready.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Process answers liveness and open-file questions about one process by
// name.
type Process struct {
	runner  Runner
	timeout time.Duration
	logger  *slog.Logger
}

// NewProcess builds a probe. A nil runner defaults to ExecRunner and a
// non-positive timeout to DefaultTimeout.
func NewProcess(runner Runner, timeout time.Duration, logger *slog.Logger) *Process {
	if runner == nil {
		runner = ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Process{
		runner:  runner,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "probes"),
	}
}

// Running reports whether a process with exactly the given name exists.
// Probe failures (including timeouts) read as "not running".
func (p *Process) Running(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	_, err := p.runner.Output(ctx, "pgrep", "-x", name)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			p.logger.Debug("process probe failed", logging.Error(err))
		}
		return false
	}
	return true
}

// OpenFiles returns the lsof output lines describing file handles the
// named process currently holds open.
func (p *Process) OpenFiles(ctx context.Context, name string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, "lsof", "-c", name)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	return lines, nil
}
