package app

import "runtime"

// openCommand returns the platform command that opens a file or URL in the
// default application.
func openCommand(target string) []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open", target}
	case "windows":
		return []string{"cmd", "/c", "start", target}
	default:
		return []string{"xdg-open", target}
	}
}
