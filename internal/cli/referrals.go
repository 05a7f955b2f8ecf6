package cli

import (
	"context"

	"github.com/spf13/cobra"

	yieldgate "github.com/yieldgate/sdk-go"
)

func newReferralsCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referrals",
		Short: "Referral commands",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats <wallet>",
			Short: "Show referral statistics of a wallet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
					stats, err := client.Referrals().Stats(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), stats)
				})
			},
		},
		&cobra.Command{
			Use:   "code <wallet>",
			Short: "Show the referral code of a wallet",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
					code, err := client.Referrals().Code(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), code)
				})
			},
		},
	)

	return cmd
}
