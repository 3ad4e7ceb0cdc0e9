package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the project test suites with pytest",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the unit test suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Tests.Unit(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "int",
		Short: "Run the integration test suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Tests.Integration(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load",
		Short: "Run the load test suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Tests.Load(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cov",
		Short: "Run the unit test suite with coverage reporting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Tests.Coverage(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "view-cov",
		Short: "Open the HTML coverage report in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			return pctx.Tests.ViewCoverage(cmd.Context())
		},
	})

	return cmd
}
