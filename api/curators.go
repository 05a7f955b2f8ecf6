package api

import (
	"context"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// CuratorAPI drives the curator onboarding workflow: apply, amend or
// withdraw the application, then submit vaults once approved.
type CuratorAPI struct {
	http transport.Requester
	cfg  config.Config
}

// NewCuratorAPI creates a CuratorAPI.
func NewCuratorAPI(http transport.Requester, cfg config.Config) *CuratorAPI {
	return &CuratorAPI{http: http, cfg: cfg}
}

// Apply submits a curator application.
func (c *CuratorAPI) Apply(ctx context.Context, app CuratorApplication) (*CuratorApplication, error) {
	if err := requireValue("name", app.Name); err != nil {
		return nil, err
	}
	if err := requireValue("email", app.Email); err != nil {
		return nil, err
	}
	if err := validateAddress("wallet", app.Wallet); err != nil {
		return nil, err
	}

	var created CuratorApplication
	if err := c.http.Post(ctx, "/curators/applications", app, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Application returns the application with the given id.
func (c *CuratorAPI) Application(ctx context.Context, id string) (*CuratorApplication, error) {
	if err := requireValue("application id", id); err != nil {
		return nil, err
	}

	var app CuratorApplication
	if err := c.http.Get(ctx, pathf("/curators/applications/%s", id), nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication amends a pending application.
func (c *CuratorAPI) UpdateApplication(ctx context.Context, id string, patch ApplicationPatch) (*CuratorApplication, error) {
	if err := requireValue("application id", id); err != nil {
		return nil, err
	}

	var app CuratorApplication
	if err := c.http.Patch(ctx, pathf("/curators/applications/%s", id), patch, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Withdraw cancels a pending application.
func (c *CuratorAPI) Withdraw(ctx context.Context, id string) error {
	if err := requireValue("application id", id); err != nil {
		return err
	}
	return c.http.Delete(ctx, pathf("/curators/applications/%s", id), nil)
}

// SubmitVault proposes a vault managed by an approved curator.
func (c *CuratorAPI) SubmitVault(ctx context.Context, curatorID string, vault VaultSubmission) (*Submission, error) {
	if err := requireValue("curator id", curatorID); err != nil {
		return nil, err
	}
	if err := validateAddress("vault address", vault.Address); err != nil {
		return nil, err
	}
	if vault.ChainID <= 0 {
		return nil, &ValidationError{Field: "chain id", Reason: "must be positive"}
	}

	var submission Submission
	if err := c.http.Post(ctx, pathf("/curators/%s/vaults", curatorID), vault, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}
