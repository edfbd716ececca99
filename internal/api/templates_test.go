package api

import (
	"net/http"
	"testing"

	"github.com/mailboard/mailboard/internal/models"
)

func createTestTemplate(t *testing.T, ts *testServer, name string) models.EmailTemplate {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/templates", map[string]any{
		"name":        name,
		"subject":     "Subject",
		"htmlContent": "<h1>Hello</h1>",
		"textContent": "Hello",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("template create status = %d: %s", rec.Code, rec.Body.String())
	}

	var tmpl models.EmailTemplate
	decodeBody(t, rec, &tmpl)
	return tmpl
}

func TestTemplateCreate_MissingFields(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/templates", map[string]any{
		"name": "No content",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTemplateCRUD(t *testing.T) {
	ts := setupTestServer(t)

	tmpl := createTestTemplate(t, ts, "Welcome")

	rec := ts.request(t, http.MethodGet, "/api/templates/"+tmpl.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	rec = ts.request(t, http.MethodPatch, "/api/templates/"+tmpl.ID, map[string]any{
		"subject": "Updated Subject",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", rec.Code)
	}
	var updated models.EmailTemplate
	decodeBody(t, rec, &updated)
	if updated.Subject != "Updated Subject" {
		t.Errorf("subject = %q, want Updated Subject", updated.Subject)
	}
	if updated.Name != "Welcome" {
		t.Errorf("name = %q, unchanged field should survive patch", updated.Name)
	}

	rec = ts.request(t, http.MethodDelete, "/api/templates/"+tmpl.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	rec = ts.request(t, http.MethodGet, "/api/templates/"+tmpl.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestTemplateDuplicate(t *testing.T) {
	ts := setupTestServer(t)

	tmpl := createTestTemplate(t, ts, "Monthly Newsletter")

	rec := ts.request(t, http.MethodPost, "/api/templates/"+tmpl.ID+"/duplicate", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var clone models.EmailTemplate
	decodeBody(t, rec, &clone)
	if clone.Name != "Monthly Newsletter (Copy)" {
		t.Errorf("name = %q, want %q", clone.Name, "Monthly Newsletter (Copy)")
	}
	if clone.ID == tmpl.ID {
		t.Error("clone has the same id as the original")
	}
	if clone.HTMLContent != tmpl.HTMLContent {
		t.Error("clone content does not match original")
	}
}

func TestTemplateDuplicate_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/templates/non-existent/duplicate", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
