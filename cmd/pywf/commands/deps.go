package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pywf/internal/app"
)

func (c *CLI) newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage project dependencies through poetry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "lock",
		Short: "Resolve the dependency tree into poetry.lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Deps.Lock(cmd.Context())
		},
	})

	install := &cobra.Command{
		Use:   "install",
		Short: "Install the package and its dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			onlyRoot, _ := cmd.Flags().GetBool("only-root")
			groups, _ := cmd.Flags().GetStringSlice("group")
			switch {
			case all:
				return pctx.Deps.InstallAll(cmd.Context())
			case onlyRoot:
				return pctx.Deps.InstallOnlyRoot(cmd.Context())
			default:
				return pctx.Deps.Install(cmd.Context(), groups...)
			}
		},
	}
	install.Flags().StringSliceP("group", "g", nil, "Dependency group to install in addition to main")
	install.Flags().Bool("all", false, "Install every dependency group")
	install.Flags().Bool("only-root", false, "Install only the package source, no dependencies")
	install.MarkFlagsMutuallyExclusive("all", "only-root")
	install.MarkFlagsMutuallyExclusive("all", "group")
	install.MarkFlagsMutuallyExclusive("only-root", "group")
	cmd.AddCommand(install)

	export := &cobra.Command{
		Use:   "export",
		Short: "Export poetry.lock to requirements files, skipping when unchanged",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			withoutHashes, _ := cmd.Flags().GetBool("without-hashes")
			_, err = pctx.Deps.Export(cmd.Context(), app.ExportOptions{
				Force:         force,
				WithoutHashes: withoutHashes,
			})
			return err
		},
	}
	export.Flags().BoolP("force", "f", false, "Export even when poetry.lock is unchanged")
	export.Flags().Bool("without-hashes", false, "Omit per-package hashes from the requirements files")
	cmd.AddCommand(export)

	return cmd
}
