package repository

import (
	"testing"

	"github.com/mailboard/mailboard/internal/models"
)

func TestSubscriberRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	s := &models.Subscriber{
		Email: "alice@example.com",
		Lists: models.StringList{"newsletter"},
	}

	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if s.ID == "" {
		t.Error("Create() did not set ID")
	}

	if s.Status != models.SubscriberActive {
		t.Errorf("Create() Status = %v, want %v", s.Status, models.SubscriberActive)
	}
}

func TestSubscriberRepository_Create_DefaultsLists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	s := &models.Subscriber{Email: "bob@example.com"}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(s.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Lists == nil || len(got.Lists) != 0 {
		t.Errorf("GetByID() Lists = %v, want empty list", got.Lists)
	}
}

func TestSubscriberRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	if err := repo.Create(&models.Subscriber{Email: "dup@example.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(&models.Subscriber{Email: "dup@example.com"}); err == nil {
		t.Error("Create() should fail for duplicate email")
	}
}

func TestSubscriberRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	s := &models.Subscriber{
		Email: "carol@example.com",
		Lists: models.StringList{"newsletter", "product-updates"},
	}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(s.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() returned nil")
	}
	if got.Email != s.Email {
		t.Errorf("GetByID() Email = %v, want %v", got.Email, s.Email)
	}
	if !got.Lists.Contains("product-updates") {
		t.Errorf("GetByID() Lists = %v, want to contain product-updates", got.Lists)
	}

	// Test not found
	got, err = repo.GetByID("non-existent")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("GetByID() should return nil for non-existent ID")
	}
}

func TestSubscriberRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	seed := []models.Subscriber{
		{Email: "a@example.com", Status: models.SubscriberActive, Lists: models.StringList{"newsletter"}},
		{Email: "b@example.com", Status: models.SubscriberActive, Lists: models.StringList{"promo"}},
		{Email: "c@example.com", Status: models.SubscriberUnsubscribed, Lists: models.StringList{"newsletter"}},
	}
	for i := range seed {
		if err := repo.Create(&seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(models.SubscriberListFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() returned %d subscribers, want 3", len(all))
	}

	active, err := repo.List(models.SubscriberListFilter{Status: models.SubscriberActive})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(active) != 2 {
		t.Errorf("List(status=active) returned %d subscribers, want 2", len(active))
	}

	newsletter, err := repo.List(models.SubscriberListFilter{List: "newsletter"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(newsletter) != 2 {
		t.Errorf("List(list=newsletter) returned %d subscribers, want 2", len(newsletter))
	}

	both, err := repo.List(models.SubscriberListFilter{Status: models.SubscriberActive, List: "newsletter"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(both) != 1 {
		t.Errorf("List(status=active, list=newsletter) returned %d subscribers, want 1", len(both))
	}
	if len(both) == 1 && both[0].Email != "a@example.com" {
		t.Errorf("List() Email = %v, want a@example.com", both[0].Email)
	}
}

func TestSubscriberRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	s := &models.Subscriber{Email: "dave@example.com"}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	s.Status = models.SubscriberUnsubscribed
	s.Lists = models.StringList{"archive"}
	if err := repo.Update(s); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(s.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != models.SubscriberUnsubscribed {
		t.Errorf("Update() Status = %v, want %v", got.Status, models.SubscriberUnsubscribed)
	}
	if !got.Lists.Contains("archive") {
		t.Errorf("Update() Lists = %v, want to contain archive", got.Lists)
	}
}

func TestSubscriberRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	s := &models.Subscriber{Email: "erin@example.com"}
	if err := repo.Create(s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.Delete(s.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !found {
		t.Error("Delete() found = false, want true")
	}

	got, err := repo.GetByID(s.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("GetByID() should return nil after deletion")
	}

	found, err = repo.Delete(s.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if found {
		t.Error("Delete() found = true for already-deleted subscriber")
	}
}
