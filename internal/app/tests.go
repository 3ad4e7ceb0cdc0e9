package app

import (
	"context"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/ui/status"
)

// Tests wraps the pytest runner from the project's virtual environment.
type Tests struct {
	project domain.Project
	layout  domain.Layout
	runner  ports.Runner
	log     ports.Logger
}

// Unit runs the unit test suite.
func (t *Tests) Unit(ctx context.Context) error {
	return status.Run(t.log, "Run unit tests", func() error {
		return t.pytest(ctx, t.layout.TestsDir)
	})
}

// Integration runs the integration test suite.
func (t *Tests) Integration(ctx context.Context) error {
	return status.Run(t.log, "Run integration tests", func() error {
		return t.pytest(ctx, t.layout.TestsIntDir)
	})
}

// Load runs the load test suite.
func (t *Tests) Load(ctx context.Context) error {
	return status.Run(t.log, "Run load tests", func() error {
		return t.pytest(ctx, t.layout.TestsLoadDir)
	})
}

// Coverage runs the unit tests under coverage, producing a terminal report
// and the htmlcov site.
func (t *Tests) Coverage(ctx context.Context) error {
	return status.Run(t.log, "Run coverage tests", func() error {
		return t.runner.Run(ctx, domain.Command{
			Args: []string{
				t.layout.PytestBin,
				"-s",
				"--tb=native",
				"--rootdir=" + t.layout.Root,
				"--cov=" + t.project.Name,
				"--cov-report", "term-missing",
				"--cov-report", "html:" + t.layout.CoverageHTMLDir,
				t.layout.TestsDir,
			},
			Dir: t.layout.Root,
		})
	})
}

// ViewCoverage opens the coverage report in the local browser.
func (t *Tests) ViewCoverage(ctx context.Context) error {
	return status.Run(t.log, "View coverage report", func() error {
		return t.runner.Run(ctx, domain.Command{
			Args: openCommand(t.layout.CoverageIndexHTML),
			Dir:  t.layout.Root,
		})
	})
}

func (t *Tests) pytest(ctx context.Context, dir string) error {
	return t.runner.Run(ctx, domain.Command{
		Args: []string{
			t.layout.PytestBin,
			dir,
			"-s",
			"--rootdir=" + t.layout.Root,
		},
		Dir: t.layout.Root,
	})
}
