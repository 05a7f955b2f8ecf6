package cli

import (
	"context"

	"github.com/spf13/cobra"

	yieldgate "github.com/yieldgate/sdk-go"
)

func newAuthCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "nonce <address>",
		Short: "Fetch the login message a wallet must sign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				nonce, err := client.Auth().Nonce(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), nonce)
			})
		},
	})

	return cmd
}
