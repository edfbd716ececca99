package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SettingsGetAll handles GET /api/settings, returning a key -> value object
func (h *Handlers) SettingsGetAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.settings.GetAll()
	if err != nil {
		h.storeError(w, "Failed to fetch settings", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// SettingGet handles GET /api/settings/{key}
func (h *Handlers) SettingGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(chi.URLParam(r, "key"))
	if err != nil {
		h.storeError(w, "Failed to fetch setting", err)
		return
	}
	if s == nil {
		h.notFound(w, "Setting not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

type settingPutRequest struct {
	Value json.RawMessage `json:"value"`
}

// SettingPut handles PUT /api/settings/{key}: update answers 200, insert 201
func (h *Handlers) SettingPut(w http.ResponseWriter, r *http.Request) {
	var req settingPutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to update setting", err)
		return
	}

	s, created, err := h.settings.Put(chi.URLParam(r, "key"), req.Value)
	if err != nil {
		h.storeError(w, "Failed to update setting", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, s)
}

// SettingDelete handles DELETE /api/settings/{key}
func (h *Handlers) SettingDelete(w http.ResponseWriter, r *http.Request) {
	found, err := h.settings.Delete(chi.URLParam(r, "key"))
	if err != nil {
		h.storeError(w, "Failed to delete setting", err)
		return
	}
	if !found {
		h.notFound(w, "Setting not found")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Setting deleted successfully"})
}
