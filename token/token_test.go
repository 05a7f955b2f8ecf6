package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestToken(t *testing.T, expiresAt *time.Time) string {
	t.Helper()

	claims := &Claims{
		Address: "0x1111111111111111111111111111111111111111",
		ChainID: 8453,
		Role:    "curator",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user-1",
			IssuedAt: jwt.NewNumericDate(time.Unix(1_700_000_000, 0)),
		},
	}
	if expiresAt != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*expiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	exp := time.Unix(1_700_003_600, 0)
	raw := generateTestToken(t, &exp)

	claims, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "0x1111111111111111111111111111111111111111", claims.Address)
	assert.Equal(t, int64(8453), claims.ChainID)
	assert.Equal(t, "curator", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestDecode_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b"} {
		_, err := Decode(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	tests := []struct {
		name    string
		raw     string
		skew    time.Duration
		expired bool
	}{
		{"valid", generateTestToken(t, &future), 0, false},
		{"within skew", generateTestToken(t, &future), 15 * time.Minute, true},
		{"expired", generateTestToken(t, &past), 0, true},
		{"no expiry", generateTestToken(t, nil), 0, true},
		{"garbage", "garbage", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, IsExpired(tt.raw, tt.skew, now))
		})
	}
}

func TestExpiresIn(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := now.Add(90 * time.Second)
	past := now.Add(-time.Hour)

	left, err := ExpiresIn(generateTestToken(t, &future), now)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, left)

	left, err = ExpiresIn(generateTestToken(t, &past), now)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = ExpiresIn(generateTestToken(t, nil), now)
	assert.ErrorIs(t, err, ErrNoExpiry)
}
