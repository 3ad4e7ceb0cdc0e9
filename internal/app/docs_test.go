package app_test

import (
	"context"
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

const toolConfig = `
doc_host_s3_bucket: docs-bucket
doc_host_s3_prefix: teams/platform
doc_host_aws_profile: deploy
`

// newDocProject is newProject plus a toolkit configuration and a built
// documentation site.
func newDocProject(t *testing.T, runner *mocks.MockRunner) (*app.Context, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(pyproject), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".pywf.yaml"), []byte(toolConfig), 0o600))

	htmlDir := filepath.Join(root, "docs", "build", "html")
	require.NoError(t, os.MkdirAll(htmlDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(htmlDir, "index.html"), []byte("<html/>"), 0o600))

	log := nopLogger{}
	a := app.New(config.NewLoader(log), runner, fs.NewHasher(fs.NewWalker()), log)
	ctx, err := a.Context(root)
	require.NoError(t, err)
	return ctx, root
}

func TestDocs_Build(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newDocProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Contains(t, cmd.Args, "-M")
			assert.Contains(t, cmd.Args, "html")
			assert.Contains(t, cmd.Args, filepath.Join(root, "docs", "source"))
			return nil
		})

	require.NoError(t, pctx.Docs.Build(context.Background()))

	// The previous build tree is cleared before sphinx runs.
	_, err := os.Stat(filepath.Join(root, "docs", "build"))
	assert.True(t, os.IsNotExist(err))
}

func TestDocs_DeployVersioned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newDocProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Equal(t, []string{
				"aws", "s3", "sync",
				filepath.Join(root, "docs", "build", "html"),
				"s3://docs-bucket/teams/platform/acme_widgets/1.2.3/",
				"--profile", "deploy",
			}, cmd.Args)
			return nil
		})

	ran, err := pctx.Docs.DeployVersioned(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDocs_DeployVersioned_NoBucketSkips(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newProject(t, runner) // no .pywf.yaml, so no bucket

	ran, err := pctx.Docs.DeployVersioned(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestDocs_DeployLatest_SkipsUnchangedSite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newDocProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd domain.Command) error {
			assert.Contains(t, cmd.Args, "s3://docs-bucket/teams/platform/acme_widgets/latest/")
			return nil
		})

	ran, err := pctx.Docs.DeployLatest(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, ran)

	// Unchanged site: no second sync.
	ran, err = pctx.Docs.DeployLatest(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, ran)

	// A content change invalidates the record.
	html := filepath.Join(root, "docs", "build", "html", "index.html")
	require.NoError(t, os.WriteFile(html, []byte("<html>v2</html>"), 0o600))

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)
	ran, err = pctx.Docs.DeployLatest(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDocs_DeployLatest_ForceAlwaysSyncs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, _ := newDocProject(t, runner)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ran, err := pctx.Docs.DeployLatest(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, ran)

	ran, err = pctx.Docs.DeployLatest(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestDocs_DeployLatest_MissingBuildFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockRunner(ctrl)
	pctx, root := newDocProject(t, runner)

	require.NoError(t, os.RemoveAll(filepath.Join(root, "docs", "build")))

	_, err := pctx.Docs.DeployLatest(context.Background(), false)
	require.Error(t, err)
}
