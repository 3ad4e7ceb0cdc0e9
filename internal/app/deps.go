package app

import (
	"context"
	"os"

	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/engine/export"
	"go.trai.ch/pywf/internal/ui/status"
	"go.trai.ch/zerr"
)

// Deps manages dependency resolution, installation, and export through
// poetry. The export path is gated by the invalidation cache: the resolved
// lock file is the canonical input and the requirements files are the
// derived artifacts.
type Deps struct {
	layout domain.Layout
	runner ports.Runner
	cache  *export.Cache
	log    ports.Logger
	dryRun bool
}

// Lock resolves the dependency tree declared in pyproject.toml and writes
// the result to poetry.lock.
func (d *Deps) Lock(ctx context.Context) error {
	return status.Run(d.log, "Resolve dependency tree", func() error {
		return d.poetry(ctx, "lock")
	})
}

// Install installs the main dependencies and the package itself, plus any
// named dependency groups.
func (d *Deps) Install(ctx context.Context, groups ...string) error {
	return status.Run(d.log, "Install dependencies", func() error {
		args := []string{"install"}
		for _, g := range groups {
			args = append(args, "--with", g)
		}
		return d.poetry(ctx, args...)
	})
}

// InstallOnlyRoot installs the package source in editable mode without any
// dependencies.
func (d *Deps) InstallOnlyRoot(ctx context.Context) error {
	return status.Run(d.log, "Install package without dependencies", func() error {
		return d.poetry(ctx, "install", "--only-root")
	})
}

// InstallAll installs every dependency group.
func (d *Deps) InstallAll(ctx context.Context) error {
	return status.Run(d.log, "Install all dependency groups", func() error {
		return d.poetry(ctx, "install", "--all-groups")
	})
}

// ExportOptions controls an export run.
type ExportOptions struct {
	// Force bypasses the lock-hash check.
	Force bool

	// WithoutHashes omits per-package hashes from the requirements files.
	WithoutHashes bool
}

// Export writes the resolved dependency tree to the requirements files,
// skipping the work when poetry.lock has not changed since the last
// successful export. It reports whether the export actually ran.
func (d *Deps) Export(ctx context.Context, opts ExportOptions) (bool, error) {
	return status.Do(d.log, "Export dependencies to requirements files", func() (bool, error) {
		input, err := os.ReadFile(d.layout.LockFile)
		if err != nil {
			return false, zerr.With(zerr.Wrap(domain.ErrInputUnreadable, err.Error()), "path", d.layout.LockFile)
		}

		action := func(ctx context.Context) error {
			return d.exportAction(ctx, opts.WithoutHashes)
		}

		// Dry runs print the would-be commands without touching the cache
		// record: a record may only ever reflect a completed export.
		if d.dryRun {
			if !opts.Force {
				stale, err := d.cache.NeedsRefresh(input)
				if err != nil {
					return false, err
				}
				if !stale {
					d.log.Info("requirements files are up to date, do nothing")
					return false, nil
				}
			}
			return true, action(ctx)
		}

		if opts.Force {
			return true, d.cache.Refresh(ctx, input, action)
		}
		ran, err := d.cache.RunIfNeeded(ctx, input, action)
		if err == nil && !ran {
			d.log.Info("requirements files are up to date, do nothing")
		}
		return ran, err
	})
}

// exportAction performs the actual export: the main requirements file plus
// one file per dependency group, each stale output removed first.
func (d *Deps) exportAction(ctx context.Context, withoutHashes bool) error {
	if err := d.exportTo(ctx, d.layout.RequirementsFile, "", withoutHashes); err != nil {
		return err
	}
	for _, ge := range d.layout.RequirementsGroups() {
		if err := d.exportTo(ctx, ge.Path, ge.Group, withoutHashes); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deps) exportTo(ctx context.Context, path, group string, withoutHashes bool) error {
	if !d.dryRun {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(err, "failed to remove stale requirements file"), "path", path)
		}
	}

	args := []string{"export", "--format", "requirements.txt", "--output", path}
	if withoutHashes {
		args = append(args, "--without-hashes")
	}
	if group != "" {
		args = append(args, "--only", group)
	}
	return d.poetry(ctx, args...)
}

func (d *Deps) poetry(ctx context.Context, args ...string) error {
	return d.runner.Run(ctx, domain.Command{
		Args: append([]string{d.layout.PoetryBin}, args...),
		Dir:  d.layout.Root,
	})
}
