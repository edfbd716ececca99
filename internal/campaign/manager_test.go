package campaign

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	mdb "github.com/mailboard/mailboard/internal/db"
	"github.com/mailboard/mailboard/internal/models"
	"github.com/mailboard/mailboard/internal/repository"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	for _, m := range mdb.Migrations {
		if _, err := db.Exec(m); err != nil {
			t.Fatalf("migration failed: %v", err)
		}
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedSubscriber(t *testing.T, db *sql.DB, email, status string, lists models.StringList) *models.Subscriber {
	t.Helper()
	s := &models.Subscriber{Email: email, Status: status, Lists: lists}
	if err := repository.NewSubscriberRepository(db).Create(s); err != nil {
		t.Fatalf("failed to seed subscriber: %v", err)
	}
	return s
}

func TestManager_Create(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())

	c, err := m.Create(context.Background(), CreateInput{
		Name:      "Spring Sale",
		Subject:   "Big savings",
		FromName:  "Shop",
		FromEmail: "shop@example.com",
		Lists:     models.StringList{"promo"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if c.ID == "" {
		t.Error("Create() did not set ID")
	}
	if c.Status != models.CampaignDraft {
		t.Errorf("Create() Status = %v, want %v", c.Status, models.CampaignDraft)
	}

	a, err := repository.NewAnalyticsRepository(db).GetByCampaignID(c.ID)
	if err != nil {
		t.Fatalf("GetByCampaignID() error = %v", err)
	}
	if a == nil {
		t.Fatal("Create() did not pair an analytics row")
	}
	if a.TotalSubscribers != 0 {
		t.Errorf("Create() TotalSubscribers = %d, want 0", a.TotalSubscribers)
	}
}

func TestManager_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing name", CreateInput{Subject: "s", FromName: "f", FromEmail: "f@example.com"}},
		{"missing subject", CreateInput{Name: "n", FromName: "f", FromEmail: "f@example.com"}},
		{"missing from name", CreateInput{Name: "n", Subject: "s", FromEmail: "f@example.com"}},
		{"missing from email", CreateInput{Name: "n", Subject: "s", FromName: "f"}},
		{"bad from email", CreateInput{Name: "n", Subject: "s", FromName: "f", FromEmail: "not-an-address"}},
		{"unknown template", CreateInput{Name: "n", Subject: "s", FromName: "f", FromEmail: "f@example.com", TemplateID: "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(ctx, tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestManager_Create_WithTemplate(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())

	tmpl := &models.EmailTemplate{Name: "Welcome", Subject: "Hi", HTMLContent: "<p>Hi</p>"}
	if err := repository.NewTemplateRepository(db).Create(tmpl); err != nil {
		t.Fatalf("failed to seed template: %v", err)
	}

	c, err := m.Create(context.Background(), CreateInput{
		Name:       "Welcome Flow",
		Subject:    "Hi",
		FromName:   "Team",
		FromEmail:  "team@example.com",
		TemplateID: tmpl.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.TemplateID != tmpl.ID {
		t.Errorf("Create() TemplateID = %v, want %v", c.TemplateID, tmpl.ID)
	}
}

func TestManager_Send_SnapshotsEligibleRecipients(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	// Active on a matching list, active on another list, active with no
	// lists, and an unsubscribed member of the target list.
	matching := seedSubscriber(t, db, "in@example.com", models.SubscriberActive, models.StringList{"newsletter", "promo"})
	seedSubscriber(t, db, "other@example.com", models.SubscriberActive, models.StringList{"announcements"})
	seedSubscriber(t, db, "nolists@example.com", models.SubscriberActive, nil)
	seedSubscriber(t, db, "gone@example.com", models.SubscriberUnsubscribed, models.StringList{"newsletter"})

	c, err := m.Create(ctx, CreateInput{
		Name:      "Weekly",
		Subject:   "This week",
		FromName:  "Team",
		FromEmail: "team@example.com",
		Lists:     models.StringList{"newsletter"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	sent, recipients, err := m.Send(ctx, c.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if recipients != 1 {
		t.Errorf("Send() recipients = %d, want 1", recipients)
	}
	if sent.Status != models.CampaignSending {
		t.Errorf("Send() Status = %v, want %v", sent.Status, models.CampaignSending)
	}
	if sent.SentAt == nil {
		t.Error("Send() did not set SentAt")
	}

	links, err := repository.NewCampaignRepository(db).ListSubscribers(c.ID)
	if err != nil {
		t.Fatalf("ListSubscribers() error = %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("Send() snapshot has %d rows, want 1", len(links))
	}
	if links[0].SubscriberID != matching.ID {
		t.Errorf("Send() snapshot subscriber = %v, want %v", links[0].SubscriberID, matching.ID)
	}
	if links[0].Status != "pending" {
		t.Errorf("Send() snapshot status = %v, want pending", links[0].Status)
	}

	a, err := repository.NewAnalyticsRepository(db).GetByCampaignID(c.ID)
	if err != nil {
		t.Fatalf("GetByCampaignID() error = %v", err)
	}
	if a.TotalSubscribers != 1 {
		t.Errorf("Send() TotalSubscribers = %d, want 1", a.TotalSubscribers)
	}
}

func TestManager_Send_EmptyListsMatchesAllActive(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	seedSubscriber(t, db, "a@example.com", models.SubscriberActive, models.StringList{"newsletter"})
	seedSubscriber(t, db, "b@example.com", models.SubscriberActive, nil)
	seedSubscriber(t, db, "c@example.com", models.SubscriberBounced, models.StringList{"newsletter"})

	c, err := m.Create(ctx, CreateInput{
		Name:      "Blast",
		Subject:   "To everyone",
		FromName:  "Team",
		FromEmail: "team@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, recipients, err := m.Send(ctx, c.ID)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if recipients != 2 {
		t.Errorf("Send() recipients = %d, want 2", recipients)
	}
}

func TestManager_Send_NotFound(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())

	_, _, err := m.Send(context.Background(), "non-existent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Send() error = %v, want ErrNotFound", err)
	}
}

func TestManager_Send_AlreadySent(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	seedSubscriber(t, db, "a@example.com", models.SubscriberActive, nil)

	c, err := m.Create(ctx, CreateInput{
		Name:      "Once",
		Subject:   "Only once",
		FromName:  "Team",
		FromEmail: "team@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, _, err := m.Send(ctx, c.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	_, _, err = m.Send(ctx, c.ID)
	if !errors.Is(err, ErrAlreadySent) {
		t.Fatalf("second Send() error = %v, want ErrAlreadySent", err)
	}

	// The failed second send must not duplicate snapshot rows
	links, err := repository.NewCampaignRepository(db).ListSubscribers(c.ID)
	if err != nil {
		t.Fatalf("ListSubscribers() error = %v", err)
	}
	if len(links) != 1 {
		t.Errorf("snapshot has %d rows after rejected resend, want 1", len(links))
	}
}

func TestManager_Send_SentCampaignRejected(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	c := &models.Campaign{
		Name:      "Historical",
		Subject:   "Done",
		Status:    models.CampaignSent,
		FromName:  "Team",
		FromEmail: "team@example.com",
	}
	if err := repository.NewCampaignRepository(db).Create(c); err != nil {
		t.Fatalf("failed to seed campaign: %v", err)
	}

	_, _, err := m.Send(ctx, c.ID)
	if !errors.Is(err, ErrAlreadySent) {
		t.Errorf("Send() error = %v, want ErrAlreadySent", err)
	}
}

func TestManager_Delete(t *testing.T) {
	db := setupTestDB(t)
	m := NewManager(db, testLogger())
	ctx := context.Background()

	seedSubscriber(t, db, "a@example.com", models.SubscriberActive, nil)

	c, err := m.Create(ctx, CreateInput{
		Name:      "Doomed",
		Subject:   "Subject",
		FromName:  "Team",
		FromEmail: "team@example.com",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, _, err := m.Send(ctx, c.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if err := m.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := repository.NewCampaignRepository(db).GetByID(c.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != nil {
		t.Error("GetByID() should return nil after deletion")
	}

	if err := m.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
