package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pywf/internal/adapters/config"
	"go.trai.ch/pywf/internal/adapters/fs"
	"go.trai.ch/pywf/internal/app"
	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(error)         {}
func (nopLogger) SetOutput(io.Writer) {}

const pyproject = `
[tool.poetry]
name = "acme_widgets"
version = "1.2.3"

[tool.poetry.dependencies]
python = "^3.11"
`

// newProject lays down a minimal project on disk and returns an App wired
// to the given runner plus the built context.
func newProject(t *testing.T, runner *mocks.MockRunner) (*app.Context, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(pyproject), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "poetry.lock"), []byte("packageA==1.0.0"), 0o600))

	log := nopLogger{}
	a := app.New(config.NewLoader(log), runner, fs.NewHasher(fs.NewWalker()), log)
	ctx, err := a.Context(root)
	require.NoError(t, err)
	return ctx, root
}

func TestDeps_Lock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, []string{"poetry", "lock"}, cmd.Args)
			assert.Equal(t, root, cmd.Dir)
			return nil
		})

	require.NoError(t, pctx.Deps.Lock(context.Background()))
}

func TestDeps_InstallGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, []string{"poetry", "install", "--with", "dev", "--with", "test"}, cmd.Args)
			return nil
		})

	require.NoError(t, pctx.Deps.Install(context.Background(), "dev", "test"))
}

func TestDeps_Export_RunsAllGroups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	var commands []domain.Command
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			commands = append(commands, cmd)
			return nil
		}).Times(5)

	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)

	// Main export first, then dev, test, doc, auto.
	require.Len(t, commands, 5)
	assert.Equal(t, "export", commands[0].Args[1])
	assert.NotContains(t, commands[0].Args, "--only")
	for i, group := range []string{"dev", "test", "doc", "auto"} {
		assert.Contains(t, commands[i+1].Args, "--only")
		assert.Contains(t, commands[i+1].Args, group)
	}
}

func TestDeps_Export_SecondRunSkips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(5)

	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)

	// Lock file unchanged: nothing runs.
	ran, err = pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestDeps_Export_LockChangeTriggersRerun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(10)

	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)

	require.NoError(t, os.WriteFile(filepath.Join(root, "poetry.lock"), []byte("packageA==1.0.1"), 0o600))

	ran, err = pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDeps_Export_ForceBypassesCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(10)

	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)

	ran, err = pctx.Deps.Export(context.Background(), app.ExportOptions{Force: true})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDeps_Export_WithoutHashes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Contains(t, cmd.Args, "--without-hashes")
			return nil
		}).Times(5)

	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{WithoutHashes: true})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDeps_Export_FailedCommandLeavesCacheCold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner)

	boom := domain.ErrCommandFailed
	gomock.InOrder(
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(boom),
		runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(5),
	)

	_, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.ErrorIs(t, err, domain.ErrCommandFailed)

	// The failed attempt wrote no record, so the same input still exports.
	ran, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDeps_Export_MissingLockFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newProject(t, runner)

	require.NoError(t, os.Remove(filepath.Join(root, "poetry.lock")))

	_, err := pctx.Deps.Export(context.Background(), app.ExportOptions{})
	require.ErrorIs(t, err, domain.ErrInputUnreadable)
}
