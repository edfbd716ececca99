package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/mailboard/mailboard/internal/models"
)

func createTestUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Name: "Test"}
	if err := repo.Create(u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return u
}

func TestTokenRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	u := createTestUser(t, users, "ops@example.com")

	result, err := tokens.Create(u.ID, "ci", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !strings.HasPrefix(result.Token, "mb_") {
		t.Errorf("Create() token = %v, want mb_ prefix", result.Token)
	}
	if result.TokenHash != HashToken(result.Token) {
		t.Error("Create() stored hash does not match token")
	}

	got, err := tokens.GetByHash(result.TokenHash)
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByHash() returned nil")
	}
	if got.UserID != u.ID {
		t.Errorf("GetByHash() UserID = %v, want %v", got.UserID, u.ID)
	}
	if got.ExpiresAt != nil {
		t.Errorf("GetByHash() ExpiresAt = %v, want nil", got.ExpiresAt)
	}
}

func TestTokenRepository_Create_WithExpiry(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	u := createTestUser(t, users, "ops@example.com")
	expires := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	result, err := tokens.Create(u.ID, "short-lived", &expires)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := tokens.GetByHash(result.TokenHash)
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got.ExpiresAt == nil {
		t.Fatal("GetByHash() ExpiresAt = nil, want value")
	}
	if !got.ExpiresAt.Equal(expires) {
		t.Errorf("GetByHash() ExpiresAt = %v, want %v", got.ExpiresAt, expires)
	}
}

func TestTokenRepository_GetByHash_NotFound(t *testing.T) {
	db := setupTestDB(t)
	tokens := NewTokenRepository(db)

	got, err := tokens.GetByHash(HashToken("mb_unknown"))
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got != nil {
		t.Error("GetByHash() should return nil for unknown hash")
	}
}

func TestTokenRepository_DeleteOnUserCascade(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	u := createTestUser(t, users, "ops@example.com")
	result, err := tokens.Create(u.ID, "ci", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := users.Delete(u.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !found {
		t.Fatal("Delete() found = false, want true")
	}

	got, err := tokens.GetByHash(result.TokenHash)
	if err != nil {
		t.Fatalf("GetByHash() error = %v", err)
	}
	if got != nil {
		t.Error("deleting a user should cascade to its tokens")
	}
}
