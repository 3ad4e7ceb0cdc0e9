// Package app implements the application layer for pywf.
package app

import (
	"io"
	"os"

	"go.trai.ch/pywf/internal/adapters/cas"
	"go.trai.ch/pywf/internal/adapters/config"
	"go.trai.ch/pywf/internal/adapters/fs"
	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/engine/export"
	"go.trai.ch/zerr"
)

// App holds the process-wide collaborators. Project-specific state lives in
// Context, built per invocation from the discovered pyproject.toml.
type App struct {
	loader *config.Loader
	runner ports.Runner
	hasher *fs.Hasher
	logger ports.Logger
	dryRun bool
}

// New creates a new App instance.
func New(loader *config.Loader, runner ports.Runner, hasher *fs.Hasher, logger ports.Logger) *App {
	return &App{
		loader: loader,
		runner: runner,
		hasher: hasher,
		logger: logger,
	}
}

// SetDryRun switches the app into dry-run mode: commands are printed, not
// executed, and no cache record or file is touched.
func (a *App) SetDryRun(dry bool) {
	a.dryRun = dry
	if r, ok := a.runner.(interface{ SetDryRun(bool) }); ok {
		r.SetDryRun(dry)
	}
}

// SetQuiet silences the status decoration and command echo.
func (a *App) SetQuiet(quiet bool) {
	if quiet {
		a.logger.SetOutput(io.Discard)
	} else {
		a.logger.SetOutput(os.Stderr)
	}
}

// Context discovers the project starting at dir and builds the workflow
// components for it. Each component implements one capability; they are
// combined by field composition, not inheritance.
type Context struct {
	Project domain.Project
	Layout  domain.Layout
	Tool    domain.ToolConfig

	Venv  *Venv
	Deps  *Deps
	Tests *Tests
	Docs  *Docs
}

// Context builds the project context for the project containing dir.
func (a *App) Context(dir string) (*Context, error) {
	path, err := a.loader.Discover(dir)
	if err != nil {
		return nil, err
	}
	project, layout, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project configuration")
	}
	tool, err := a.loader.LoadTool(layout.Root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load toolkit configuration")
	}

	lockStore, err := cas.NewStore(layout.LockRecordPath)
	if err != nil {
		return nil, err
	}
	siteStore, err := cas.NewStore(layout.SiteRecordPath)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Project: project,
		Layout:  layout,
		Tool:    tool,
	}
	ctx.Venv = &Venv{
		project: project,
		layout:  layout,
		runner:  a.runner,
		log:     a.logger,
		dryRun:  a.dryRun,
	}
	ctx.Deps = &Deps{
		layout: layout,
		runner: a.runner,
		cache:  export.New(lockStore),
		log:    a.logger,
		dryRun: a.dryRun,
	}
	ctx.Tests = &Tests{
		project: project,
		layout:  layout,
		runner:  a.runner,
		log:     a.logger,
	}
	ctx.Docs = &Docs{
		project: project,
		layout:  layout,
		tool:    tool,
		runner:  a.runner,
		hasher:  a.hasher,
		cache:   export.New(siteStore),
		log:     a.logger,
		dryRun:  a.dryRun,
	}
	return ctx, nil
}

// Components contains all the initialized application components exposed to
// the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}
