package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/yieldgate/sdk-go/token"
)

type tokenInfo struct {
	Address   string     `json:"address,omitempty"`
	ChainID   int64      `json:"chainId,omitempty"`
	Role      string     `json:"role,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	ExpiresIn string     `json:"expiresIn,omitempty"`
	Expired   bool       `json:"expired"`
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Session token utilities",
	}

	var skew time.Duration
	inspect := &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a session token without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			claims, err := token.Decode(raw)
			if err != nil {
				return err
			}

			now := time.Now()
			info := tokenInfo{
				Address: claims.Address,
				ChainID: claims.ChainID,
				Role:    claims.Role,
				Subject: claims.Subject,
				Issuer:  claims.Issuer,
				Expired: token.IsExpired(raw, skew, now),
			}

			left, err := token.ExpiresIn(raw, now)
			switch {
			case errors.Is(err, token.ErrNoExpiry):
			case err != nil:
				return err
			default:
				exp := claims.ExpiresAt.Time
				info.ExpiresAt = &exp
				info.ExpiresIn = left.Round(time.Second).String()
			}

			return printJSON(cmd.OutOrStdout(), info)
		},
	}
	inspect.Flags().DurationVar(&skew, "skew", 0, "treat tokens expiring within this window as expired")

	cmd.AddCommand(inspect)
	return cmd
}
