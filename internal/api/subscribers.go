package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mailboard/mailboard/internal/models"
)

var errInvalidEmail = errors.New("email is not a valid address")

// SubscriberList handles GET /api/subscribers?status=&list=
func (h *Handlers) SubscriberList(w http.ResponseWriter, r *http.Request) {
	filter := models.SubscriberListFilter{
		Status: r.URL.Query().Get("status"),
		List:   r.URL.Query().Get("list"),
	}

	subscribers, err := h.subscribers.List(filter)
	if err != nil {
		h.storeError(w, "Failed to fetch subscribers", err)
		return
	}
	writeJSON(w, http.StatusOK, subscribers)
}

// SubscriberGet handles GET /api/subscribers/{id}
func (h *Handlers) SubscriberGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.subscribers.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to fetch subscriber", err)
		return
	}
	if s == nil {
		h.notFound(w, "Subscriber not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type subscriberCreateRequest struct {
	Email  string            `json:"email"`
	Status string            `json:"status"`
	Lists  models.StringList `json:"lists"`
}

// SubscriberCreate handles POST /api/subscribers
func (h *Handlers) SubscriberCreate(w http.ResponseWriter, r *http.Request) {
	var req subscriberCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to create subscriber", err)
		return
	}
	if !strings.Contains(req.Email, "@") {
		h.badRequest(w, "Failed to create subscriber", errInvalidEmail)
		return
	}

	s := &models.Subscriber{
		Email:  strings.TrimSpace(req.Email),
		Status: req.Status,
		Lists:  req.Lists,
	}
	if err := h.subscribers.Create(s); err != nil {
		h.badRequest(w, "Failed to create subscriber", err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

type subscriberPatchRequest struct {
	Email  *string            `json:"email"`
	Status *string            `json:"status"`
	Lists  *models.StringList `json:"lists"`
}

// SubscriberUpdate handles PATCH /api/subscribers/{id}
func (h *Handlers) SubscriberUpdate(w http.ResponseWriter, r *http.Request) {
	s, err := h.subscribers.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to update subscriber", err)
		return
	}
	if s == nil {
		h.notFound(w, "Subscriber not found")
		return
	}

	var req subscriberPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to update subscriber", err)
		return
	}
	if req.Email != nil {
		s.Email = *req.Email
	}
	if req.Status != nil {
		s.Status = *req.Status
	}
	if req.Lists != nil {
		s.Lists = *req.Lists
	}

	if err := h.subscribers.Update(s); err != nil {
		h.storeError(w, "Failed to update subscriber", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// SubscriberDelete handles DELETE /api/subscribers/{id}
func (h *Handlers) SubscriberDelete(w http.ResponseWriter, r *http.Request) {
	found, err := h.subscribers.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to delete subscriber", err)
		return
	}
	if !found {
		h.notFound(w, "Subscriber not found")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Subscriber deleted successfully"})
}
