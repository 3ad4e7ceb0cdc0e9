package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newVenvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venv",
		Short: "Manage the project virtual environment",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create the in-project virtual environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			_, err = pctx.Venv.Create(cmd.Context())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Remove the virtual environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pctx, err := c.projectContext(cmd)
			if err != nil {
				return err
			}
			_, err = pctx.Venv.Remove(cmd.Context())
			return err
		},
	})

	return cmd
}
