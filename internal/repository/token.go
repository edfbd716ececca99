package repository

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailboard/mailboard/internal/models"
)

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// HashToken returns the hex SHA-256 digest used for token storage and lookup
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// TokenCreateResult carries the plaintext token, which is only shown once
type TokenCreateResult struct {
	models.APIToken
	Token string
}

// Create generates a random bearer token for a user and stores its hash
func (r *TokenRepository) Create(userID, name string, expiresAt *time.Time) (*TokenCreateResult, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	token := "mb_" + hex.EncodeToString(tokenBytes)

	t := models.APIToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: HashToken(token),
		Name:      name,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	_, err := r.db.Exec(`
		INSERT INTO api_tokens (id, user_id, token_hash, name, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.Name, t.CreatedAt, t.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &TokenCreateResult{APIToken: t, Token: token}, nil
}

// GetByHash returns a token row by its hash
func (r *TokenRepository) GetByHash(hash string) (*models.APIToken, error) {
	t := &models.APIToken{}
	var lastUsedAt, expiresAt sql.NullTime
	err := r.db.QueryRow(`
		SELECT id, user_id, token_hash, COALESCE(name, ''), created_at, last_used_at, expires_at
		FROM api_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.Name, &t.CreatedAt, &lastUsedAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastUsedAt.Valid {
		t.LastUsedAt = &lastUsedAt.Time
	}
	if expiresAt.Valid {
		t.ExpiresAt = &expiresAt.Time
	}
	return t, nil
}

// UpdateLastUsed stamps the token's last use time
func (r *TokenRepository) UpdateLastUsed(id string) error {
	_, err := r.db.Exec("UPDATE api_tokens SET last_used_at = ? WHERE id = ?", time.Now(), id)
	return err
}

// Delete removes a token
func (r *TokenRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM api_tokens WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
