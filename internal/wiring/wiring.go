// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pywf/internal/adapters/config"
	_ "go.trai.ch/pywf/internal/adapters/fs"
	_ "go.trai.ch/pywf/internal/adapters/logger"
	_ "go.trai.ch/pywf/internal/adapters/shell"
	// Register app nodes.
	_ "go.trai.ch/pywf/internal/app"
)
