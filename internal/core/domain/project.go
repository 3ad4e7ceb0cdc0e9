// Package domain contains the core types for the pywf toolkit.
package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Project holds the metadata of the Python project being automated.
// It is constructed once by the config loader and passed explicitly to
// every component that needs it.
type Project struct {
	// Name is the importable package name. A directory with the same name
	// must exist under the project root.
	Name string

	// Version is the package version declared in pyproject.toml.
	Version string

	// PythonVersion is the interpreter version in "3.X" form, e.g. "3.11".
	PythonVersion string
}

// Validate checks that the project metadata is usable.
func (p Project) Validate() error {
	if p.Name == "" {
		return zerr.New("project name is empty")
	}
	return ValidatePythonVersion(p.PythonVersion)
}

// ValidatePythonVersion checks that v has the form "3.X" with X >= 7.
func ValidatePythonVersion(v string) error {
	major, minor, ok := strings.Cut(v, ".")
	if !ok || major != "3" {
		return zerr.With(ErrInvalidPythonVersion, "python_version", v)
	}
	n, err := strconv.Atoi(minor)
	if err != nil || n < 7 {
		return zerr.With(ErrInvalidPythonVersion, "python_version", v)
	}
	return nil
}

// ToolConfig holds the optional toolkit-level settings loaded from
// .pywf.yaml at the project root. The zero value disables doc hosting.
type ToolConfig struct {
	// DocHostBucket is the S3 bucket hosting the documentation site.
	DocHostBucket string `yaml:"doc_host_s3_bucket"`

	// DocHostPrefix is the key prefix under the bucket, e.g. "projects/".
	DocHostPrefix string `yaml:"doc_host_s3_prefix"`

	// AWSProfile is the named AWS CLI profile used for deploys.
	AWSProfile string `yaml:"doc_host_aws_profile"`
}
