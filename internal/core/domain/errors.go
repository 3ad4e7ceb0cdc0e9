package domain

import "go.trai.ch/zerr"

var (
	// ErrRecordCorrupt is returned when a cache record file exists but cannot
	// be parsed or lacks the hash field. It is never auto-repaired: a
	// corrupted record could mask a real need to refresh.
	ErrRecordCorrupt = zerr.New("cache record corrupt")

	// ErrInputUnreadable is returned when the declared input artifact cannot
	// be read. No cache interaction is attempted in that case.
	ErrInputUnreadable = zerr.New("input artifact unreadable")

	// ErrCommandFailed is returned when a wrapped external command exits with
	// non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrProjectNotFound is returned when no pyproject.toml can be located in
	// the starting directory or any of its parents.
	ErrProjectNotFound = zerr.New("pyproject.toml not found")

	// ErrVersionMismatch is returned when the version in _version.py and the
	// version in pyproject.toml disagree.
	ErrVersionMismatch = zerr.New("package version mismatch")

	// ErrInvalidPythonVersion is returned when the python version is not in
	// "3.X" form with X >= 7.
	ErrInvalidPythonVersion = zerr.New("invalid python version")

	// ErrSecretFileMissing is returned when the home secret file does not
	// exist in the home directory.
	ErrSecretFileMissing = zerr.New("secret file not found")

	// ErrSecretNotFound is returned when a dotted path does not resolve to a
	// value in the secret tree.
	ErrSecretNotFound = zerr.New("secret not found")
)
