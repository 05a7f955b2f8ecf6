// Package api contains the typed clients for each area of the gateway.
//
// Every client is built from a transport.Requester and the SDK
// configuration, and is normally obtained from a yieldgate.Client rather
// than constructed directly:
//
//	vaults, err := client.Vaults().List(ctx, api.VaultFilter{ChainID: 8453})
//
// Arguments are validated before any request is sent; a malformed address,
// hash or empty identifier yields a *ValidationError. Gateway failures are
// returned as *transport.APIError.
package api
