package transport

import (
	"context"
	"sync"
)

// TokenSource supplies the bearer token attached to each request.
// An empty token sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// SessionToken is a mutable TokenSource, typically updated after login,
// refresh and logout. The zero value holds no token.
type SessionToken struct {
	mu    sync.RWMutex
	token string
}

// Token implements TokenSource.
func (s *SessionToken) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// Set replaces the token. An empty string clears it.
func (s *SessionToken) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
