package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldgate/sdk-go/api"
	"github.com/yieldgate/sdk-go/token"
)

const wallet = "0x1111111111111111111111111111111111111111"

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	envFile := filepath.Join(t.TempDir(), "missing.env")

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", envFile}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func gateway(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": v})
}

func TestVaultsList(t *testing.T) {
	var query string
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vaults", r.URL.Path)
		query = r.URL.RawQuery
		respond(w, api.List[api.Vault]{Items: []api.Vault{{Address: wallet, APY: 4.2}}, Total: 1})
	})

	out, err := run(t, "--base-url", url, "vaults", "list", "--chain", "8453", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, query, "chainId=8453")
	assert.Contains(t, query, "limit=5")

	var list api.List[api.Vault]
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, wallet, list.Items[0].Address)
}

func TestVaultsGet_NotFound(t *testing.T) {
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"vault not found"}`))
	})

	_, err := run(t, "--base-url", url, "vaults", "get", wallet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault not found")
}

func TestVaultsGet_InvalidAddress(t *testing.T) {
	_, err := run(t, "--base-url", "https://api.example.com", "vaults", "get", "nope")

	var verr *api.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTransactionsList(t *testing.T) {
	var query string
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		respond(w, api.List[api.Transaction]{Items: []api.Transaction{{Hash: "0xabc", Type: api.TransactionDeposit}}})
	})

	out, err := run(t, "--base-url", url, "tx", "list", "--wallet", wallet, "--type", "deposit")
	require.NoError(t, err)
	assert.Contains(t, query, "type=deposit")
	assert.Contains(t, out, `"hash": "0xabc"`)
}

func TestReferralsStats(t *testing.T) {
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/referrals/"+wallet+"/stats", r.URL.Path)
		respond(w, api.ReferralStats{Wallet: wallet, Code: "ABC", Referrals: 3})
	})

	out, err := run(t, "--base-url", url, "referrals", "stats", wallet)
	require.NoError(t, err)

	var stats api.ReferralStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 3, stats.Referrals)
}

func TestAuthNonce(t *testing.T) {
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wallet, r.URL.Query().Get("address"))
		respond(w, api.Nonce{Nonce: "n1", Message: "sign in"})
	})

	out, err := run(t, "--base-url", url, "auth", "nonce", wallet)
	require.NoError(t, err)
	assert.Contains(t, out, `"message": "sign in"`)
}

func TestTokenInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, token.Claims{
		Address: wallet,
		ChainID: 1,
		Role:    "curator",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	out, err := run(t, "token", "inspect", raw)
	require.NoError(t, err)

	var info tokenInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, wallet, info.Address)
	assert.Equal(t, "curator", info.Role)
	assert.Equal(t, "u1", info.Subject)
	assert.False(t, info.Expired)
	require.NotNil(t, info.ExpiresAt)
	assert.True(t, exp.Equal(*info.ExpiresAt))

	out, err = run(t, "token", "inspect", "--skew", "2h", raw)
	require.NoError(t, err)
	assert.Contains(t, out, `"expired": true`)
}

func TestTokenInspect_Malformed(t *testing.T) {
	_, err := run(t, "token", "inspect", "not-a-token")
	assert.Error(t, err)
}

func TestGraph(t *testing.T) {
	out, err := run(t, "--base-url", "https://api.example.com", "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "Dependency Graph:")
	assert.Contains(t, out, "httpClient")
	assert.Contains(t, out, "vaultAPI")

	out, err = run(t, "--base-url", "https://api.example.com", "graph", "--format", "dot")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph dependencies {"))

	_, err = run(t, "--base-url", "https://api.example.com", "graph", "--format", "svg")
	assert.ErrorContains(t, err, "unknown format")
}

func TestConfigFile(t *testing.T) {
	var gotPartner string
	url := gateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotPartner = r.Header.Get("X-Partner-ID")
		respond(w, api.List[api.Vault]{})
	})

	path := filepath.Join(t.TempDir(), "yieldgate.yaml")
	writeFile(t, path, "base_url: "+url+"\npartner_id: acme\n")

	_, err := run(t, "--config", path, "vaults", "list")
	require.NoError(t, err)
	assert.Equal(t, "acme", gotPartner)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
