// Package yieldgate is the Go SDK for the YieldGate gateway API.
//
// # Overview
//
// A Client bundles typed clients for every area of the gateway:
//   - Auth: wallet-signature login and session management
//   - Vaults: vault listings and wallet positions
//   - Transactions: indexed deposits and withdrawals
//   - Partners: partner transaction tracking
//   - Referrals: referral codes and statistics
//   - Curators: the curator onboarding workflow
//
// Internally the Client registers its transport and API clients in a
// container.Container and initializes them once, in dependency order.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := yieldgate.New(ctx, cfg, yieldgate.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	vaults, err := client.Vaults().List(ctx, api.VaultFilter{ChainID: 8453})
//
// # Authentication
//
// Unless WithTokenSource is used, the Client keeps the access token returned
// by Auth().Verify and Auth().Refresh and attaches it to later requests:
//
//	nonce, err := client.Auth().Nonce(ctx, address)
//	signature := sign(nonce.Message)
//	session, err := client.Auth().Verify(ctx, api.VerifyRequest{
//	    Address:   address,
//	    Message:   nonce.Message,
//	    Signature: signature,
//	})
//
// # Error Handling
//
// Configuration problems are reported as *ConfigError. Gateway failures are
// *transport.APIError values:
//
//	if transport.IsNotFound(err) {
//	    // no such vault
//	}
package yieldgate
