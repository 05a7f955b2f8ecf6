// Package token inspects gateway session tokens.
//
// Tokens are decoded without verifying their signature: the gateway is the
// only party that verifies them. The helpers exist so a client can tell when
// to refresh a session before the server rejects it.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry")

// Claims are the claims the gateway puts in a session token.
type Claims struct {
	Address string `json:"address,omitempty"`
	ChainID int64  `json:"chainId,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode parses raw and returns its claims without verifying the signature.
func Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim of raw.
func ExpiresAt(raw string) (time.Time, error) {
	claims, err := Decode(raw)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether raw expires within skew of now. Tokens that
// cannot be decoded or carry no expiry are treated as expired.
func IsExpired(raw string, skew time.Duration, now time.Time) bool {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return true
	}
	return !now.Add(skew).Before(exp)
}

// ExpiresIn returns the time left before raw expires, never negative.
func ExpiresIn(raw string, now time.Time) (time.Duration, error) {
	exp, err := ExpiresAt(raw)
	if err != nil {
		return 0, err
	}
	if left := exp.Sub(now); left > 0 {
		return left, nil
	}
	return 0, nil
}
