// Package build holds build-time information injected via linker flags.
package build

var (
	// Version is the application version, "dev" unless set at link time.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
