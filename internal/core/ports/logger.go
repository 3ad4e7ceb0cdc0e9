package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetOutput redirects the logger. Passing io.Discard silences it, which
	// is how quiet runs suppress the decoration around operations.
	SetOutput(w io.Writer)
}
