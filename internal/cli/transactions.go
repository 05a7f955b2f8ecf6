package cli

import (
	"context"

	"github.com/spf13/cobra"

	yieldgate "github.com/yieldgate/sdk-go"
	"github.com/yieldgate/sdk-go/api"
)

func newTransactionsCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Transaction commands",
	}
	cmd.AddCommand(newTransactionsListCmd(f), newTransactionsGetCmd(f))
	return cmd
}

func newTransactionsListCmd(f *flags) *cobra.Command {
	var (
		filter api.TransactionFilter
		txType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed vault transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.Type = api.TransactionType(txType)
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				list, err := client.Transactions().List(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().StringVar(&filter.Wallet, "wallet", "", "only transactions of this wallet")
	cmd.Flags().StringVar(&filter.Vault, "vault", "", "only transactions on this vault")
	cmd.Flags().StringVar(&txType, "type", "", "deposit or withdraw")
	cmd.Flags().Int64Var(&filter.ChainID, "chain", 0, "only transactions on this chain ID")
	cmd.Flags().IntVar(&filter.Page.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "page size")

	return cmd
}

func newTransactionsGetCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <hash>",
		Short: "Show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withClient(cmd, func(ctx context.Context, client *yieldgate.Client) error {
				tx, err := client.Transactions().Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}
}
