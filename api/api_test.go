package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldgate/sdk-go/api"
	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/transport"
)

const (
	wallet   = "0x1111111111111111111111111111111111111111"
	vaultRef = "0x2222222222222222222222222222222222222222"
	txHash   = "0x3333333333333333333333333333333333333333333333333333333333333333"
)

// call is one request seen by fakeRequester.
type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeRequester records calls and answers them with a canned JSON payload.
type fakeRequester struct {
	calls    []call
	response string
	err      error
}

func (f *fakeRequester) record(method, path string, query url.Values, body, out any) error {
	f.calls = append(f.calls, call{Method: method, Path: path, Query: query, Body: body})
	if f.err != nil {
		return f.err
	}
	if out != nil && f.response != "" {
		return json.Unmarshal([]byte(f.response), out)
	}
	return nil
}

func (f *fakeRequester) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.record(http.MethodGet, path, query, nil, out)
}

func (f *fakeRequester) Post(_ context.Context, path string, body, out any) error {
	return f.record(http.MethodPost, path, nil, body, out)
}

func (f *fakeRequester) Put(_ context.Context, path string, body, out any) error {
	return f.record(http.MethodPut, path, nil, body, out)
}

func (f *fakeRequester) Patch(_ context.Context, path string, body, out any) error {
	return f.record(http.MethodPatch, path, nil, body, out)
}

func (f *fakeRequester) Delete(_ context.Context, path string, out any) error {
	return f.record(http.MethodDelete, path, nil, nil, out)
}

func (f *fakeRequester) last(t *testing.T) call {
	t.Helper()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

// session is a TokenSetter that remembers every token it was given.
type session struct {
	tokens []string
}

func (s *session) Set(token string) {
	s.tokens = append(s.tokens, token)
}

func assertValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestAuthAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("Nonce", func(t *testing.T) {
		fake := &fakeRequester{response: `{"nonce":"n-1","message":"Sign in: n-1"}`}
		auth := api.NewAuthAPI(fake, config.Default(), nil)

		nonce, err := auth.Nonce(ctx, wallet)
		require.NoError(t, err)
		assert.Equal(t, "n-1", nonce.Nonce)

		got := fake.last(t)
		assert.Equal(t, "/auth/nonce", got.Path)
		assert.Equal(t, wallet, got.Query.Get("address"))
	})

	t.Run("Verify stores the access token", func(t *testing.T) {
		fake := &fakeRequester{response: `{"accessToken":"at","refreshToken":"rt","user":{"id":"u1","address":"` + wallet + `"}}`}
		s := &session{}
		auth := api.NewAuthAPI(fake, config.Default(), s)

		req := api.VerifyRequest{Address: wallet, Message: "Sign in: n-1", Signature: "0xsig"}
		sess, err := auth.Verify(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "at", sess.AccessToken)
		assert.Equal(t, "u1", sess.User.ID)
		assert.Equal(t, []string{"at"}, s.tokens)
		assert.Equal(t, call{Method: http.MethodPost, Path: "/auth/verify", Body: req}, fake.last(t))
	})

	t.Run("Refresh", func(t *testing.T) {
		fake := &fakeRequester{response: `{"accessToken":"at-2","refreshToken":"rt-2"}`}
		s := &session{}
		auth := api.NewAuthAPI(fake, config.Default(), s)

		sess, err := auth.Refresh(ctx, "rt")
		require.NoError(t, err)
		assert.Equal(t, "rt-2", sess.RefreshToken)
		assert.Equal(t, []string{"at-2"}, s.tokens)
		assert.Equal(t, map[string]string{"refreshToken": "rt"}, fake.last(t).Body)
	})

	t.Run("Me", func(t *testing.T) {
		fake := &fakeRequester{response: `{"id":"u1","role":"curator"}`}
		user, err := api.NewAuthAPI(fake, config.Default(), nil).Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "curator", user.Role)
		assert.Equal(t, "/auth/me", fake.last(t).Path)
	})

	t.Run("Logout clears the token even on failure", func(t *testing.T) {
		fake := &fakeRequester{err: &transport.APIError{StatusCode: 500}}
		s := &session{}
		err := api.NewAuthAPI(fake, config.Default(), s).Logout(ctx)

		assert.Error(t, err)
		assert.Equal(t, []string{""}, s.tokens)
		assert.Equal(t, "/auth/logout", fake.last(t).Path)
	})

	t.Run("validation", func(t *testing.T) {
		fake := &fakeRequester{}
		auth := api.NewAuthAPI(fake, config.Default(), nil)

		_, err := auth.Nonce(ctx, "0x123")
		assertValidation(t, err, "address")

		_, err = auth.Verify(ctx, api.VerifyRequest{Address: wallet, Message: "m"})
		assertValidation(t, err, "signature")

		_, err = auth.Refresh(ctx, " ")
		assertValidation(t, err, "refresh token")

		assert.Empty(t, fake.calls, "no request is sent for invalid input")
	})
}

func TestVaultAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("List encodes the filter", func(t *testing.T) {
		fake := &fakeRequester{response: `{"items":[{"address":"` + vaultRef + `","apy":5.5}],"total":1,"page":2,"limit":10}`}
		vaults := api.NewVaultAPI(fake, config.Default())

		list, err := vaults.List(ctx, api.VaultFilter{
			ChainID: 8453,
			Curator: wallet,
			Status:  "active",
			Page:    api.Page{Page: 2, Limit: 10},
		})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, 5.5, list.Items[0].APY)
		assert.Equal(t, 1, list.Total)

		got := fake.last(t)
		assert.Equal(t, "/vaults", got.Path)
		assert.Equal(t, url.Values{
			"chainId": {"8453"},
			"curator": {wallet},
			"status":  {"active"},
			"page":    {"2"},
			"limit":   {"10"},
		}, got.Query)
	})

	t.Run("Get and Positions", func(t *testing.T) {
		fake := &fakeRequester{response: `{"address":"` + vaultRef + `"}`}
		vaults := api.NewVaultAPI(fake, config.Default())

		v, err := vaults.Get(ctx, vaultRef)
		require.NoError(t, err)
		assert.Equal(t, vaultRef, v.Address)
		assert.Equal(t, "/vaults/"+vaultRef, fake.last(t).Path)

		fake.response = `[{"vault":"` + vaultRef + `","shares":"100"}]`
		positions, err := vaults.Positions(ctx, wallet)
		require.NoError(t, err)
		require.Len(t, positions, 1)
		assert.Equal(t, "100", positions[0].Shares)
		assert.Equal(t, "/wallets/"+wallet+"/positions", fake.last(t).Path)
	})

	t.Run("validation", func(t *testing.T) {
		fake := &fakeRequester{}
		vaults := api.NewVaultAPI(fake, config.Default())

		_, err := vaults.Get(ctx, "")
		assertValidation(t, err, "vault address")

		_, err = vaults.List(ctx, api.VaultFilter{Curator: "bob"})
		assertValidation(t, err, "curator")

		_, err = vaults.Positions(ctx, "0xZZ11111111111111111111111111111111111111")
		assertValidation(t, err, "wallet")

		assert.Empty(t, fake.calls)
	})
}

func TestTransactionAPI(t *testing.T) {
	ctx := context.Background()

	fake := &fakeRequester{response: `{"items":[],"total":0}`}
	txs := api.NewTransactionAPI(fake, config.Default())

	_, err := txs.List(ctx, api.TransactionFilter{Wallet: wallet, Type: api.TransactionDeposit})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"wallet": {wallet}, "type": {"deposit"}}, fake.last(t).Query)

	fake.response = `{"hash":"` + txHash + `","type":"withdraw","timestamp":"2024-05-01T12:00:00Z"}`
	tx, err := txs.Get(ctx, txHash)
	require.NoError(t, err)
	assert.Equal(t, api.TransactionWithdraw, tx.Type)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), tx.Timestamp)
	assert.Equal(t, "/transactions/"+txHash, fake.last(t).Path)

	_, err = txs.Get(ctx, vaultRef)
	assertValidation(t, err, "hash")

	_, err = txs.List(ctx, api.TransactionFilter{Vault: "nope"})
	assertValidation(t, err, "vault")
}

func TestPartnerAPI(t *testing.T) {
	ctx := context.Background()
	tx := api.PartnerTransaction{Hash: txHash, Wallet: wallet, Vault: vaultRef, ChainID: 1, Type: api.TransactionDeposit, Amount: "10"}

	t.Run("defaults to the configured partner", func(t *testing.T) {
		cfg := config.Default()
		cfg.PartnerID = "acme"
		fake := &fakeRequester{response: `{"id":"pt-1","partnerId":"acme"}`}
		partners := api.NewPartnerAPI(fake, cfg)

		tracked, err := partners.Track(ctx, tx)
		require.NoError(t, err)
		assert.Equal(t, "pt-1", tracked.ID)
		assert.Equal(t, "/partners/acme/transactions", fake.last(t).Path)

		fake.response = `{"items":[{"id":"pt-1"}],"total":1}`
		list, err := partners.List(ctx, "", api.Page{Limit: 5})
		require.NoError(t, err)
		assert.Len(t, list.Items, 1)
		assert.Equal(t, url.Values{"limit": {"5"}}, fake.last(t).Query)
	})

	t.Run("explicit partner is escaped", func(t *testing.T) {
		fake := &fakeRequester{}
		partners := api.NewPartnerAPI(fake, config.Default())

		withPartner := tx
		withPartner.PartnerID = "team a/b"
		_, err := partners.Track(ctx, withPartner)
		require.NoError(t, err)
		assert.Equal(t, "/partners/team%20a%2Fb/transactions", fake.last(t).Path)
	})

	t.Run("missing partner", func(t *testing.T) {
		partners := api.NewPartnerAPI(&fakeRequester{}, config.Default())

		_, err := partners.Track(ctx, tx)
		assertValidation(t, err, "partner id")

		_, err = partners.List(ctx, "", api.Page{})
		assertValidation(t, err, "partner id")
	})
}

func TestReferralAPI(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRequester{response: `{"wallet":"` + wallet + `","code":"ALPHA"}`}
	referrals := api.NewReferralAPI(fake, config.Default())

	code, err := referrals.Code(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", code.Code)
	assert.Equal(t, "/referrals/"+wallet+"/code", fake.last(t).Path)

	require.NoError(t, referrals.Apply(ctx, wallet, "ALPHA"))
	assert.Equal(t, call{
		Method: http.MethodPost,
		Path:   "/referrals/apply",
		Body:   map[string]string{"wallet": wallet, "code": "ALPHA"},
	}, fake.last(t))

	fake.response = `{"referrals":3,"totalVolume":"1500","rewards":"7.5"}`
	stats, err := referrals.Stats(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Referrals)
	assert.Equal(t, "/referrals/"+wallet+"/stats", fake.last(t).Path)

	assertValidation(t, referrals.Apply(ctx, wallet, ""), "code")
}

func TestCuratorAPI(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRequester{response: `{"id":"app-1","status":"pending"}`}
	curators := api.NewCuratorAPI(fake, config.Default())

	app, err := curators.Apply(ctx, api.CuratorApplication{Name: "Steakhouse", Email: "ops@example.com", Wallet: wallet})
	require.NoError(t, err)
	assert.Equal(t, api.ApplicationPending, app.Status)
	assert.Equal(t, "/curators/applications", fake.last(t).Path)

	_, err = curators.Application(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, call{Method: http.MethodGet, Path: "/curators/applications/app-1"}, fake.last(t))

	website := "https://example.com"
	_, err = curators.UpdateApplication(ctx, "app-1", api.ApplicationPatch{Website: &website})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, fake.last(t).Method)

	require.NoError(t, curators.Withdraw(ctx, "app-1"))
	assert.Equal(t, call{Method: http.MethodDelete, Path: "/curators/applications/app-1"}, fake.last(t))

	fake.response = `{"id":"sub-1","curatorId":"cur-1","status":"pending"}`
	sub, err := curators.SubmitVault(ctx, "cur-1", api.VaultSubmission{Address: vaultRef, ChainID: 8453, Name: "USDC Prime"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID)
	assert.Equal(t, "/curators/cur-1/vaults", fake.last(t).Path)

	_, err = curators.Apply(ctx, api.CuratorApplication{Name: "x", Wallet: wallet})
	assertValidation(t, err, "email")

	_, err = curators.SubmitVault(ctx, "cur-1", api.VaultSubmission{Address: vaultRef})
	assertValidation(t, err, "chain id")

	assertValidation(t, curators.Withdraw(ctx, ""), "application id")
}

func TestAPI_OverTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/vaults/" + vaultRef:
			_, _ = w.Write([]byte(`{"data":{"address":"` + vaultRef + `","name":"USDC Prime","apy":6.1}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no such route"}}`))
		}
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.BaseURL = server.URL + "/v1"
	cfg.RetryCount = 0

	client, err := transport.New(cfg)
	require.NoError(t, err)
	defer client.Close()

	vaults := api.NewVaultAPI(client, cfg)

	v, err := vaults.Get(context.Background(), vaultRef)
	require.NoError(t, err)
	assert.Equal(t, "USDC Prime", v.Name)
	assert.Equal(t, 6.1, v.APY)

	_, err = vaults.Positions(context.Background(), wallet)
	assert.True(t, transport.IsNotFound(err))
}
