// Package logger implements the logging adapter over charmbracelet/log.
package logger

import (
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/ui/output"
)

// Logger implements ports.Logger using charmbracelet/log.
type Logger struct {
	mu     sync.RWMutex
	logger *charmlog.Logger
}

// New creates a new Logger writing to stderr.
func New() ports.Logger {
	return &Logger{logger: newCharmLogger(os.Stderr)}
}

func newCharmLogger(w io.Writer) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.InfoLevel,
		ReportTimestamp: false,
	})
	l.SetColorProfile(output.ColorProfile())
	return l
}

// SetOutput redirects the logger. Passing io.Discard silences it, which is
// what the quiet flag does.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = newCharmLogger(w)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}
