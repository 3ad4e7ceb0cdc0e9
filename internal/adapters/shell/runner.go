// Package shell provides the exec-backed command runner adapter.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/ui/style"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements ports.Runner using os/exec.
//
// Every invocation prints the assembled argv first. In dry-run mode that is
// all that happens, which lets users inspect exactly what the toolkit would
// execute.
type Runner struct {
	logger ports.Logger
	dryRun bool
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// SetDryRun toggles dry-run mode for all subsequent invocations.
func (r *Runner) SetDryRun(dry bool) {
	r.dryRun = dry
}

// Run prints and executes cmd, blocking until it exits. Stdout and stderr
// are streamed line-wise to the logger. A non-zero exit status is wrapped
// with domain.ErrCommandFailed and the exit code.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	if len(cmd.Args) == 0 {
		return zerr.New("empty command")
	}

	r.logger.Info(style.CommandStyle.Render(style.Dollar + " " + cmd.String()))
	if r.dryRun {
		return nil
	}

	//nolint:gosec // argv is assembled by our own wrappers
	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	c.Env = mergeEnv(os.Environ(), cmd.Env)
	c.Stdout = &logWriter{logger: r.logger, level: "info"}
	c.Stderr = &logWriter{logger: r.logger, level: "warn"}

	if err := c.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrCommandFailed, err.Error()), "command", cmd.String()),
			"exit_code", exitCode,
		)
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write may receive partial lines; splitting on newlines keeps the logger
// output readable without buffering across calls.
func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Warn(line)
		}
	}
	return len(p), nil
}

// mergeEnv layers command-specific overrides on top of the inherited
// environment.
func mergeEnv(sysEnv []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return sysEnv
	}

	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	order := make([]string, 0, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	for k, v := range overrides {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
