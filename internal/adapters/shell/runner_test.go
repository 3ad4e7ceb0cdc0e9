package shell_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pywf/internal/adapters/shell"
	"go.trai.ch/pywf/internal/core/domain"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(string)         {}
func (l *recordingLogger) Error(error)         {}
func (l *recordingLogger) SetOutput(io.Writer) {}

func TestRunner_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix tools")
	}

	log := &recordingLogger{}
	r := shell.NewRunner(log)

	dir := t.TempDir()
	err := r.Run(context.Background(), domain.Command{
		Args: []string{"touch", "marker"},
		Dir:  dir,
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "marker"))
	assert.NoError(t, statErr, "command must run with Dir as working directory")
}

func TestRunner_DryRunDoesNotExecute(t *testing.T) {
	log := &recordingLogger{}
	r := shell.NewRunner(log)
	r.SetDryRun(true)

	dir := t.TempDir()
	err := r.Run(context.Background(), domain.Command{
		Args: []string{"touch", "marker"},
		Dir:  dir,
	})
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "marker"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not execute the command")
	require.NotEmpty(t, log.infos, "dry run still prints the command")
	assert.Contains(t, log.infos[0], "touch marker")
}

func TestRunner_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix tools")
	}

	r := shell.NewRunner(&recordingLogger{})
	err := r.Run(context.Background(), domain.Command{Args: []string{"false"}})
	require.ErrorIs(t, err, domain.ErrCommandFailed)
}

func TestRunner_EmptyCommand(t *testing.T) {
	r := shell.NewRunner(&recordingLogger{})
	err := r.Run(context.Background(), domain.Command{})
	require.Error(t, err)
}

func TestCommand_String(t *testing.T) {
	cmd := domain.Command{Args: []string{"poetry", "export", "--output", "a file.txt"}}
	assert.Equal(t, "poetry export --output 'a file.txt'", cmd.String())
}
