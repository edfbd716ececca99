package api

import (
	"net/http"
	"testing"

	"github.com/mailboard/mailboard/internal/models"
)

func TestSubscriberCreate(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{
		"email": "alice@example.com",
		"lists": []string{"newsletter"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var s models.Subscriber
	decodeBody(t, rec, &s)
	if s.ID == "" {
		t.Error("response has no id")
	}
	if s.Status != models.SubscriberActive {
		t.Errorf("status = %q, want active", s.Status)
	}
	if !s.Lists.Contains("newsletter") {
		t.Errorf("lists = %v, want to contain newsletter", s.Lists)
	}
}

func TestSubscriberCreate_InvalidEmail(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{
		"email": "not-an-address",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "Failed to create subscriber" {
		t.Errorf("message = %q, want %q", body["message"], "Failed to create subscriber")
	}
	if body["error"] == "" {
		t.Error("expected error detail in response")
	}
}

func TestSubscriberCreate_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)

	first := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{"email": "dup@example.com"})
	if first.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", first.Code)
	}

	second := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{"email": "dup@example.com"})
	if second.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", second.Code)
	}
}

func TestSubscriberGet_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/subscribers/non-existent", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "Subscriber not found" {
		t.Errorf("message = %q, want %q", body["message"], "Subscriber not found")
	}
}

func TestSubscriberList_Filters(t *testing.T) {
	ts := setupTestServer(t)

	seed := []map[string]any{
		{"email": "a@example.com", "lists": []string{"newsletter"}},
		{"email": "b@example.com", "lists": []string{"promo"}},
		{"email": "c@example.com", "status": "unsubscribed", "lists": []string{"newsletter"}},
	}
	for _, s := range seed {
		if rec := ts.request(t, http.MethodPost, "/api/subscribers", s); rec.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := ts.request(t, http.MethodGet, "/api/subscribers?status=active&list=newsletter", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []models.Subscriber
	decodeBody(t, rec, &got)
	if len(got) != 1 {
		t.Fatalf("returned %d subscribers, want 1", len(got))
	}
	if got[0].Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", got[0].Email)
	}
}

func TestSubscriberUpdate(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{"email": "bob@example.com"})
	var s models.Subscriber
	decodeBody(t, created, &s)

	rec := ts.request(t, http.MethodPatch, "/api/subscribers/"+s.ID, map[string]any{
		"status": "unsubscribed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var updated models.Subscriber
	decodeBody(t, rec, &updated)
	if updated.Status != models.SubscriberUnsubscribed {
		t.Errorf("status = %q, want unsubscribed", updated.Status)
	}
	if updated.Email != "bob@example.com" {
		t.Errorf("email = %q, unchanged field should survive patch", updated.Email)
	}
}

func TestSubscriberDelete(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.request(t, http.MethodPost, "/api/subscribers", map[string]any{"email": "gone@example.com"})
	var s models.Subscriber
	decodeBody(t, created, &s)

	rec := ts.request(t, http.MethodDelete, "/api/subscribers/"+s.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	decodeBody(t, rec, &body)
	if body["message"] != "Subscriber deleted successfully" {
		t.Errorf("message = %q, want %q", body["message"], "Subscriber deleted successfully")
	}

	if rec := ts.request(t, http.MethodDelete, "/api/subscribers/"+s.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
