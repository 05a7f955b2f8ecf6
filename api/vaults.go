package api

import (
	"context"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// VaultAPI queries vaults and wallet positions.
type VaultAPI struct {
	http transport.Requester
	cfg  config.Config
}

// NewVaultAPI creates a VaultAPI.
func NewVaultAPI(http transport.Requester, cfg config.Config) *VaultAPI {
	return &VaultAPI{http: http, cfg: cfg}
}

// List returns vaults matching filter.
func (v *VaultAPI) List(ctx context.Context, filter VaultFilter) (*List[Vault], error) {
	if filter.Curator != "" {
		if err := validateAddress("curator", filter.Curator); err != nil {
			return nil, err
		}
	}

	var list List[Vault]
	if err := v.http.Get(ctx, "/vaults", filter.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns the vault at address.
func (v *VaultAPI) Get(ctx context.Context, address string) (*Vault, error) {
	if err := validateAddress("vault address", address); err != nil {
		return nil, err
	}

	var vault Vault
	if err := v.http.Get(ctx, pathf("/vaults/%s", address), nil, &vault); err != nil {
		return nil, err
	}
	return &vault, nil
}

// Positions returns every vault position held by wallet.
func (v *VaultAPI) Positions(ctx context.Context, wallet string) ([]Position, error) {
	if err := validateAddress("wallet", wallet); err != nil {
		return nil, err
	}

	var positions []Position
	if err := v.http.Get(ctx, pathf("/wallets/%s/positions", wallet), nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}
