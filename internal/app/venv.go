package app

import (
	"context"
	"os"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/ui/status"
	"go.trai.ch/zerr"
)

// Venv manages the project's virtual environment through poetry.
type Venv struct {
	project domain.Project
	layout  domain.Layout
	runner  ports.Runner
	log     ports.Logger
	dryRun  bool
}

// Create sets up the in-project virtual environment. It reports whether a
// creation was actually performed; an existing environment is left alone.
func (v *Venv) Create(ctx context.Context) (bool, error) {
	return status.Do(v.log, "Create virtual environment", func() (bool, error) {
		if _, err := os.Stat(v.layout.VenvDir); err == nil {
			v.log.Info(v.layout.VenvDir + " already exists, do nothing")
			return false, nil
		}

		if err := v.runner.Run(ctx, domain.Command{
			Args: []string{v.layout.PoetryBin, "config", "virtualenvs.in-project", "true"},
			Dir:  v.layout.Root,
		}); err != nil {
			return false, err
		}
		if err := v.runner.Run(ctx, domain.Command{
			Args: []string{v.layout.PoetryBin, "env", "use", "python" + v.project.PythonVersion},
			Dir:  v.layout.Root,
		}); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Remove deletes the virtual environment directory. It reports whether
// anything was removed.
func (v *Venv) Remove(ctx context.Context) (bool, error) {
	return status.Do(v.log, "Remove virtual environment", func() (bool, error) {
		if _, err := os.Stat(v.layout.VenvDir); err != nil {
			v.log.Info(v.layout.VenvDir + " doesn't exist, do nothing")
			return false, nil
		}

		v.log.Info("rm -r " + v.layout.VenvDir)
		if v.dryRun {
			return true, nil
		}
		if err := os.RemoveAll(v.layout.VenvDir); err != nil {
			return false, zerr.Wrap(err, "failed to remove virtual environment")
		}
		return true, nil
	})
}
