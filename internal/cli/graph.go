package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphCmd(f *flags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the SDK dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := f.newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			c := client.Container()
			switch format {
			case "text":
				return c.WriteText(cmd.OutOrStdout())
			case "dot":
				return c.WriteDOT(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q (want text or dot)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or dot")
	return cmd
}
