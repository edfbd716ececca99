package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mailboard/mailboard/internal/models"
)

var errMissingTemplateFields = errors.New("name, subject and htmlContent are required")

// TemplateList handles GET /api/templates
func (h *Handlers) TemplateList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List()
	if err != nil {
		h.storeError(w, "Failed to fetch templates", err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// TemplateGet handles GET /api/templates/{id}
func (h *Handlers) TemplateGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to fetch template", err)
		return
	}
	if t == nil {
		h.notFound(w, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type templateCreateRequest struct {
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	HTMLContent  string `json:"htmlContent"`
	TextContent  string `json:"textContent"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// TemplateCreate handles POST /api/templates
func (h *Handlers) TemplateCreate(w http.ResponseWriter, r *http.Request) {
	var req templateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to create template", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.HTMLContent) == "" {
		h.badRequest(w, "Failed to create template", errMissingTemplateFields)
		return
	}

	t := &models.EmailTemplate{
		Name:         req.Name,
		Subject:      req.Subject,
		HTMLContent:  req.HTMLContent,
		TextContent:  req.TextContent,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := h.templates.Create(t); err != nil {
		h.badRequest(w, "Failed to create template", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type templatePatchRequest struct {
	Name         *string `json:"name"`
	Subject      *string `json:"subject"`
	HTMLContent  *string `json:"htmlContent"`
	TextContent  *string `json:"textContent"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

// TemplateUpdate handles PATCH /api/templates/{id}
func (h *Handlers) TemplateUpdate(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to update template", err)
		return
	}
	if t == nil {
		h.notFound(w, "Template not found")
		return
	}

	var req templatePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to update template", err)
		return
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Subject != nil {
		t.Subject = *req.Subject
	}
	if req.HTMLContent != nil {
		t.HTMLContent = *req.HTMLContent
	}
	if req.TextContent != nil {
		t.TextContent = *req.TextContent
	}
	if req.ThumbnailURL != nil {
		t.ThumbnailURL = *req.ThumbnailURL
	}

	if err := h.templates.Update(t); err != nil {
		h.storeError(w, "Failed to update template", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// TemplateDelete handles DELETE /api/templates/{id}
func (h *Handlers) TemplateDelete(w http.ResponseWriter, r *http.Request) {
	found, err := h.templates.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to delete template", err)
		return
	}
	if !found {
		h.notFound(w, "Template not found")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Template deleted successfully"})
}

// TemplateDuplicate handles POST /api/templates/{id}/duplicate
func (h *Handlers) TemplateDuplicate(w http.ResponseWriter, r *http.Request) {
	clone, err := h.templates.Duplicate(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to duplicate template", err)
		return
	}
	if clone == nil {
		h.notFound(w, "Template not found")
		return
	}
	writeJSON(w, http.StatusCreated, clone)
}
