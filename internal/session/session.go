package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound reports that a token has no live session, either because it was
// never issued, was destroyed at logout, or expired.
var ErrNotFound = errors.New("session not found")

// Store persists session state keyed by token.
type Store interface {
	Set(ctx context.Context, token, username string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// Manager issues, resolves and destroys sessions. A session holds exactly one
// value: the authenticated username. Tokens are opaque and random; nothing is
// derivable from them.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{store: store, ttl: ttl, logger: logger}
}

// Start issues a new session for username and returns its token. Called only
// after successful credential verification or registration.
func (m *Manager) Start(ctx context.Context, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	if err := m.store.Set(ctx, token, username, m.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	m.logger.Info("Session started", zap.String("username", username))
	return token, nil
}

// Resolve returns the username bound to token, or ErrNotFound.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrNotFound
	}
	return m.store.Get(ctx, token)
}

// Destroy invalidates the session. Destroying an already-gone session is not
// an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	m.logger.Info("Session destroyed")
	return nil
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
