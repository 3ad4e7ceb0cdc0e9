package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Build, view, and deploy the documentation site",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "build",
		Short: "Build the sphinx documentation site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Docs.Build(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Open the locally built site in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Docs.View(cmd.Context())
		},
	})

	deploy := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the built site to S3 static hosting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			latest, _ := cmd.Flags().GetBool("latest")
			force, _ := cmd.Flags().GetBool("force")
			if latest {
				_, err = pctx.Docs.DeployLatest(cmd.Context(), force)
				return err
			}
			_, err = pctx.Docs.DeployVersioned(cmd.Context())
			return err
		},
	}
	deploy.Flags().Bool("latest", false, "Deploy to the latest slot instead of the version slot")
	deploy.Flags().BoolP("force", "f", false, "Deploy even when the built site is unchanged")
	cmd.AddCommand(deploy)

	cmd.AddCommand(&cobra.Command{
		Use:   "view-latest",
		Short: "Open the hosted latest documentation in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Docs.ViewLatest(cmd.Context())
		},
	})

	return cmd
}
