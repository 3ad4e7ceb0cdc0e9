package domain

import (
	"path/filepath"
	"runtime"
)

const (
	// PywfDirName is the name of the toolkit metadata directory.
	PywfDirName = ".pywf"

	// PyProjectFileName is the name of the project configuration file.
	PyProjectFileName = "pyproject.toml"

	// ToolFileName is the name of the optional toolkit configuration file.
	ToolFileName = ".pywf.yaml"

	// LockFileName is the name of the resolved dependency lock file.
	LockFileName = "poetry.lock"

	// LockRecordFileName is the cache record gating dependency exports.
	LockRecordFileName = "poetry-lock-hash.json"

	// SiteRecordFileName is the cache record gating latest-doc deploys.
	SiteRecordFileName = "doc-site-hash.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout enumerates every path the toolkit touches, derived once from the
// project root and package name.
type Layout struct {
	Root string

	// Virtual environment.
	VenvDir    string
	VenvBinDir string

	// External tool binaries. Poetry and the AWS CLI are expected on PATH;
	// pytest and sphinx-build come from the virtual environment.
	PoetryBin      string
	AWSBin         string
	PytestBin      string
	SphinxBuildBin string

	// Dependency management.
	PyProjectFile    string
	LockFile         string
	RequirementsFile string
	RequirementsDev  string
	RequirementsTest string
	RequirementsDoc  string
	RequirementsAuto string

	// Tests.
	TestsDir          string
	TestsIntDir       string
	TestsLoadDir      string
	CoverageHTMLDir   string
	CoverageIndexHTML string

	// Documentation.
	DocsSourceDir    string
	DocsBuildDir     string
	DocsBuildHTMLDir string
	DocsIndexHTML    string

	// Package source.
	VersionFile string

	// Toolkit metadata.
	PywfDir        string
	LockRecordPath string
	SiteRecordPath string
}

// NewLayout derives the full path layout for a project rooted at root with
// the given package name.
func NewLayout(root, packageName string) Layout {
	venv := filepath.Join(root, ".venv")
	venvBin := filepath.Join(venv, venvBinDirName())
	docsBuild := filepath.Join(root, "docs", "build")
	pywfDir := filepath.Join(root, PywfDirName)

	return Layout{
		Root: root,

		VenvDir:    venv,
		VenvBinDir: venvBin,

		PoetryBin:      "poetry",
		AWSBin:         "aws",
		PytestBin:      filepath.Join(venvBin, exeName("pytest")),
		SphinxBuildBin: filepath.Join(venvBin, exeName("sphinx-build")),

		PyProjectFile:    filepath.Join(root, PyProjectFileName),
		LockFile:         filepath.Join(root, LockFileName),
		RequirementsFile: filepath.Join(root, "requirements.txt"),
		RequirementsDev:  filepath.Join(root, "requirements-dev.txt"),
		RequirementsTest: filepath.Join(root, "requirements-test.txt"),
		RequirementsDoc:  filepath.Join(root, "requirements-doc.txt"),
		RequirementsAuto: filepath.Join(root, "requirements-automation.txt"),

		TestsDir:          filepath.Join(root, "tests"),
		TestsIntDir:       filepath.Join(root, "tests_int"),
		TestsLoadDir:      filepath.Join(root, "tests_load"),
		CoverageHTMLDir:   filepath.Join(root, "htmlcov"),
		CoverageIndexHTML: filepath.Join(root, "htmlcov", "index.html"),

		DocsSourceDir:    filepath.Join(root, "docs", "source"),
		DocsBuildDir:     docsBuild,
		DocsBuildHTMLDir: filepath.Join(docsBuild, "html"),
		DocsIndexHTML:    filepath.Join(docsBuild, "html", "index.html"),

		VersionFile: filepath.Join(root, packageName, "_version.py"),

		PywfDir:        pywfDir,
		LockRecordPath: filepath.Join(pywfDir, LockRecordFileName),
		SiteRecordPath: filepath.Join(pywfDir, SiteRecordFileName),
	}
}

// RequirementsGroups maps poetry dependency groups to their export targets,
// in the order they are exported.
func (l Layout) RequirementsGroups() []GroupExport {
	return []GroupExport{
		{Group: "dev", Path: l.RequirementsDev},
		{Group: "test", Path: l.RequirementsTest},
		{Group: "doc", Path: l.RequirementsDoc},
		{Group: "auto", Path: l.RequirementsAuto},
	}
}

// GroupExport pairs a poetry dependency group with its requirements file.
type GroupExport struct {
	Group string
	Path  string
}

func venvBinDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
