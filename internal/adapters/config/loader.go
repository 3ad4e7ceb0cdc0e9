// Package config loads project metadata from pyproject.toml and toolkit
// settings from .pywf.yaml.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader discovers and parses project configuration. It is constructed once
// and produces explicit Project/Layout values; no package-level state.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Discover locates pyproject.toml by searching startDir and its parents.
func (l *Loader) Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve start directory")
	}

	for {
		path := filepath.Join(dir, domain.PyProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrProjectNotFound, "start_dir", startDir)
		}
		dir = parent
	}
}

// Load parses the pyproject.toml at path into a Project and derives the
// Layout for its directory. When the package carries a _version.py, its
// version is cross-checked against pyproject.toml.
func (l *Loader) Load(path string) (domain.Project, domain.Layout, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Project{}, domain.Layout{}, zerr.Wrap(err, "failed to read pyproject.toml")
	}

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Project{}, domain.Layout{}, zerr.Wrap(err, "failed to parse pyproject.toml")
	}

	constraint, _ := file.Tool.Poetry.Dependencies["python"].(string)
	pythonVersion, err := pythonMajorMinor(constraint)
	if err != nil {
		return domain.Project{}, domain.Layout{}, err
	}

	project := domain.Project{
		Name:          file.Tool.Poetry.Name,
		Version:       file.Tool.Poetry.Version,
		PythonVersion: pythonVersion,
	}
	if err := project.Validate(); err != nil {
		return domain.Project{}, domain.Layout{}, err
	}

	layout := domain.NewLayout(filepath.Dir(path), project.Name)

	if err := crossCheckVersion(layout.VersionFile, project.Version); err != nil {
		return domain.Project{}, domain.Layout{}, err
	}

	return project, layout, nil
}

// LoadTool reads the optional .pywf.yaml at the project root. A missing
// file yields the zero config, which disables doc hosting.
func (l *Loader) LoadTool(root string) (domain.ToolConfig, error) {
	path := filepath.Join(root, domain.ToolFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path derives from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ToolConfig{}, nil
		}
		return domain.ToolConfig{}, zerr.Wrap(err, "failed to read .pywf.yaml")
	}

	var cfg domain.ToolConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ToolConfig{}, zerr.Wrap(err, "failed to parse .pywf.yaml")
	}
	return cfg, nil
}

var versionLineRe = regexp.MustCompile(`__version__\s*=\s*["']([^"']+)["']`)

// crossCheckVersion errors when _version.py exists and disagrees with the
// pyproject.toml version. Projects without a _version.py are accepted.
func crossCheckVersion(versionFile, declared string) error {
	data, err := os.ReadFile(versionFile) //nolint:gosec // path derives from the project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read _version.py")
	}

	m := versionLineRe.FindSubmatch(data)
	if m == nil {
		return zerr.With(zerr.New("no __version__ assignment found"), "path", versionFile)
	}
	if got := string(m[1]); got != declared {
		return zerr.With(
			zerr.With(domain.ErrVersionMismatch, "version_py", got),
			"pyproject", declared,
		)
	}
	return nil
}

// pythonMajorMinor reduces a poetry python constraint like "^3.11" or
// ">=3.9,<4.0" to its "3.X" floor.
func pythonMajorMinor(constraint string) (string, error) {
	first := strings.TrimSpace(strings.Split(constraint, ",")[0])
	first = strings.TrimLeft(first, "^~>=< ")

	parts := strings.Split(first, ".")
	if len(parts) < 2 {
		return "", zerr.With(domain.ErrInvalidPythonVersion, "constraint", constraint)
	}
	v := parts[0] + "." + parts[1]
	if err := domain.ValidatePythonVersion(v); err != nil {
		return "", zerr.With(err, "constraint", constraint)
	}
	return v, nil
}
