package cli

import (
	"context"

	"github.com/spf13/cobra"

	yieldgate "github.com/yieldgate/sdk-go"
	"github.com/yieldgate/sdk-go/api"
)

func newVaultsCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaults",
		Short: "Vault commands",
	}
	cmd.AddCommand(newVaultsListCmd(f), newVaultsGetCmd(f), newVaultsPositionsCmd(f))
	return cmd
}

func newVaultsListCmd(f *flags) *cobra.Command {
	var filter api.VaultFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				list, err := client.Vaults().List(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().Int64Var(&filter.ChainID, "chain", 0, "only vaults on this chain ID")
	cmd.Flags().StringVar(&filter.Curator, "curator", "", "only vaults managed by this curator address")
	cmd.Flags().StringVar(&filter.Asset, "asset", "", "only vaults of this asset")
	cmd.Flags().StringVar(&filter.Status, "status", "", "only vaults with this status")
	cmd.Flags().IntVar(&filter.Page.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "page size")

	return cmd
}

func newVaultsGetCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <address>",
		Short: "Show a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				vault, err := client.Vaults().Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), vault)
			})
		},
	}
}

func newVaultsPositionsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "positions <wallet>",
		Short: "List the vault positions of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				positions, err := client.Vaults().Positions(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), positions)
			})
		},
	}
}
