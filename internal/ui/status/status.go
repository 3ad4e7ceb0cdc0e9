// Package status decorates an operation with start and end log lines. It is
// the explicit replacement for wrapping methods in a logging decorator: any
// callsite passes a title and a zero-argument action and gets the action's
// result back unchanged.
package status

import (
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/ui/style"
)

// Run logs a styled start line, runs fn, then logs a success or failure
// line. The action's error is returned as is.
func Run(log ports.Logger, title string, fn func() error) error {
	log.Info(style.TitleStyle.Render(style.Arrow + " " + title))
	err := fn()
	if err != nil {
		log.Info(style.FailureStyle.Render(style.Cross + " " + title))
		return err
	}
	log.Info(style.SuccessStyle.Render(style.Check + " " + title))
	return nil
}

// Do is the generic variant for actions that produce a value.
func Do[T any](log ports.Logger, title string, fn func() (T, error)) (T, error) {
	var result T
	err := Run(log, title, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
