// Package auth verifies bearer tokens against stored token hashes.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailboard/mailboard/internal/repository"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Principal identifies the operator behind a verified token
type Principal struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Verifier resolves a bearer token to a principal. A failed verification
// yields ErrUnauthenticated; anything else is a storage fault.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

// TokenVerifier verifies tokens against the api_tokens table
type TokenVerifier struct {
	tokens *repository.TokenRepository
	users  *repository.UserRepository
	logger *slog.Logger
}

func NewTokenVerifier(db *sql.DB, logger *slog.Logger) *TokenVerifier {
	return &TokenVerifier{
		tokens: repository.NewTokenRepository(db),
		users:  repository.NewUserRepository(db),
		logger: logger.With("component", "auth"),
	}
}

func (v *TokenVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	t, err := v.tokens.GetByHash(repository.HashToken(token))
	if err != nil {
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}
	if t == nil {
		return nil, ErrUnauthenticated
	}
	if t.ExpiresAt != nil && time.Now().After(*t.ExpiresAt) {
		return nil, ErrUnauthenticated
	}

	u, err := v.users.GetByID(t.UserID)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if u == nil {
		return nil, ErrUnauthenticated
	}

	// Update last used without slowing down the request
	go func() {
		if err := v.tokens.UpdateLastUsed(t.ID); err != nil {
			v.logger.Warn("failed to update token last used", "error", err)
		}
	}()

	return &Principal{UserID: u.ID, Email: u.Email, Name: u.Name}, nil
}
