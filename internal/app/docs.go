package app

import (
	"context"
	"os"
	"strings"

	"go.trai.ch/pywf/internal/adapters/fs"
	"go.trai.ch/pywf/internal/core/domain"
	"go.trai.ch/pywf/internal/core/ports"
	"go.trai.ch/pywf/internal/engine/export"
	"go.trai.ch/pywf/internal/ui/status"
	"go.trai.ch/zerr"
)

// Docs builds the sphinx documentation site and deploys it to S3 static
// hosting. Latest-doc deploys are gated by the invalidation cache keyed on
// a fingerprint of the built site, so re-running the workflow without a
// rebuild does not re-sync an unchanged tree.
type Docs struct {
	project domain.Project
	layout  domain.Layout
	tool    domain.ToolConfig
	runner  ports.Runner
	hasher  *fs.Hasher
	cache   *export.Cache
	log     ports.Logger
	dryRun  bool
}

// Build renders the documentation site into docs/build/html, clearing any
// previous build first.
func (d *Docs) Build(ctx context.Context) error {
	return status.Run(d.log, "Build documentation site", func() error {
		if !d.dryRun {
			if err := os.RemoveAll(d.layout.DocsBuildDir); err != nil {
				return zerr.Wrap(err, "failed to clear documentation build directory")
			}
		}
		return d.runner.Run(ctx, domain.Command{
			Args: []string{
				d.layout.SphinxBuildBin,
				"-M", "html",
				d.layout.DocsSourceDir,
				d.layout.DocsBuildDir,
			},
			Dir: d.layout.Root,
		})
	})
}

// View opens the locally built site in the browser.
func (d *Docs) View(ctx context.Context) error {
	return status.Run(d.log, "View documentation site", func() error {
		return d.runner.Run(ctx, domain.Command{
			Args: openCommand(d.layout.DocsIndexHTML),
			Dir:  d.layout.Root,
		})
	})
}

// DeployVersioned uploads the built site under the package's version
// prefix. It reports whether a deploy was performed; a missing bucket
// configuration skips with a warning rather than failing, so the shared
// workflow works for projects without doc hosting.
func (d *Docs) DeployVersioned(ctx context.Context) (bool, error) {
	return status.Do(d.log, "Deploy versioned documentation", func() (bool, error) {
		if d.tool.DocHostBucket == "" {
			d.log.Warn("doc_host_s3_bucket is not set, skip")
			return false, nil
		}
		return true, d.sync(ctx, d.project.Version)
	})
}

// DeployLatest uploads the built site under the "latest" prefix, skipping
// when the site content has not changed since the last successful deploy.
// With force the check is bypassed.
func (d *Docs) DeployLatest(ctx context.Context, force bool) (bool, error) {
	return status.Do(d.log, "Deploy latest documentation", func() (bool, error) {
		if d.tool.DocHostBucket == "" {
			d.log.Warn("doc_host_s3_bucket is not set, skip")
			return false, nil
		}

		fingerprint, err := d.hasher.Fingerprint(d.layout.DocsBuildHTMLDir)
		if err != nil {
			return false, zerr.Wrap(err, "failed to fingerprint built site, build the documentation first")
		}
		input := []byte(fingerprint)
		action := func(ctx context.Context) error { return d.sync(ctx, "latest") }

		if d.dryRun {
			if !force {
				stale, err := d.cache.NeedsRefresh(input)
				if err != nil {
					return false, err
				}
				if !stale {
					d.log.Info("latest documentation is up to date, do nothing")
					return false, nil
				}
			}
			return true, action(ctx)
		}

		if force {
			return true, d.cache.Refresh(ctx, input, action)
		}
		ran, err := d.cache.RunIfNeeded(ctx, input, action)
		if err == nil && !ran {
			d.log.Info("latest documentation is up to date, do nothing")
		}
		return ran, err
	})
}

// ViewLatest opens the hosted latest documentation in the browser.
func (d *Docs) ViewLatest(ctx context.Context) error {
	return status.Run(d.log, "View latest documentation", func() error {
		if d.tool.DocHostBucket == "" {
			d.log.Warn("doc_host_s3_bucket is not set, skip")
			return nil
		}
		url := "https://" + d.tool.DocHostBucket + ".s3.amazonaws.com/" +
			d.sitePrefix() + "latest/index.html"
		return d.runner.Run(ctx, domain.Command{
			Args: openCommand(url),
			Dir:  d.layout.Root,
		})
	})
}

// sync uploads the built html tree to s3://bucket/prefix/<name>/<slot>/.
func (d *Docs) sync(ctx context.Context, slot string) error {
	args := []string{
		d.layout.AWSBin, "s3", "sync",
		d.layout.DocsBuildHTMLDir,
		"s3://" + d.tool.DocHostBucket + "/" + d.sitePrefix() + slot + "/",
	}
	if d.tool.AWSProfile != "" {
		args = append(args, "--profile", d.tool.AWSProfile)
	}
	return d.runner.Run(ctx, domain.Command{Args: args, Dir: d.layout.Root})
}

func (d *Docs) sitePrefix() string {
	prefix := d.tool.DocHostPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + d.project.Name + "/"
}
