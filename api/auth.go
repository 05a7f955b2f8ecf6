package api

import (
	"context"
	"net/url"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

// TokenSetter receives the access token after login, refresh and logout.
type TokenSetter interface {
	Set(token string)
}

// AuthAPI implements wallet-signature login.
type AuthAPI struct {
	http    transport.Requester
	cfg     config.Config
	session TokenSetter
}

// NewAuthAPI creates an AuthAPI. session may be nil, in which case tokens
// are only returned to the caller.
func NewAuthAPI(http transport.Requester, cfg config.Config, session TokenSetter) *AuthAPI {
	return &AuthAPI{http: http, cfg: cfg, session: session}
}

// Nonce fetches the message address must sign.
func (a *AuthAPI) Nonce(ctx context.Context, address string) (*Nonce, error) {
	if err := validateAddress("address", address); err != nil {
		return nil, err
	}

	var nonce Nonce
	if err := a.http.Get(ctx, "/auth/nonce", url.Values{"address": {address}}, &nonce); err != nil {
		return nil, err
	}
	return &nonce, nil
}

// Verify exchanges a signed nonce message for a session.
func (a *AuthAPI) Verify(ctx context.Context, req VerifyRequest) (*Session, error) {
	if err := validateAddress("address", req.Address); err != nil {
		return nil, err
	}
	if err := requireValue("message", req.Message); err != nil {
		return nil, err
	}
	if err := requireValue("signature", req.Signature); err != nil {
		return nil, err
	}

	var session Session
	if err := a.http.Post(ctx, "/auth/verify", req, &session); err != nil {
		return nil, err
	}
	a.store(session.AccessToken)
	return &session, nil
}

// Refresh exchanges a refresh token for a new session.
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if err := requireValue("refresh token", refreshToken); err != nil {
		return nil, err
	}

	body := map[string]string{"refreshToken": refreshToken}

	var session Session
	if err := a.http.Post(ctx, "/auth/refresh", body, &session); err != nil {
		return nil, err
	}
	a.store(session.AccessToken)
	return &session, nil
}

// Me returns the authenticated user.
func (a *AuthAPI) Me(ctx context.Context) (*User, error) {
	var user User
	if err := a.http.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the session. The stored token is cleared even when the
// gateway call fails.
func (a *AuthAPI) Logout(ctx context.Context) error {
	defer a.store("")
	return a.http.Post(ctx, "/auth/logout", nil, nil)
}

func (a *AuthAPI) store(token string) {
	if a.session != nil {
		a.session.Set(token)
	}
}
