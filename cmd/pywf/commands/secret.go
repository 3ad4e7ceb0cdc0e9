package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/pywf/internal/adapters/secrets"
)

func (c *CLI) newSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Read values from the local secret file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <path>",
		Short: "Print the secret at the given dotted path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := secrets.Open()
			if err != nil {
				return err
			}
			value, err := store.Value(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	return cmd
}
