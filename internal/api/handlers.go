package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mailboard/mailboard/internal/campaign"
	"github.com/mailboard/mailboard/internal/dashboard"
	"github.com/mailboard/mailboard/internal/db"
	"github.com/mailboard/mailboard/internal/metrics"
	"github.com/mailboard/mailboard/internal/repository"
)

// Handlers carries the dependencies shared by all route handlers
type Handlers struct {
	db         *db.DB
	logger     *slog.Logger
	metrics    *metrics.Metrics
	campaigns  *campaign.Manager
	aggregator *dashboard.Aggregator

	subscribers   *repository.SubscriberRepository
	templates     *repository.TemplateRepository
	campaignStore *repository.CampaignRepository
	analytics     *repository.AnalyticsRepository
	settings      *repository.SettingsRepository
}

func (h *Handlers) initRepositories() {
	h.subscribers = repository.NewSubscriberRepository(h.db.DB)
	h.templates = repository.NewTemplateRepository(h.db.DB)
	h.campaignStore = repository.NewCampaignRepository(h.db.DB)
	h.analytics = repository.NewAnalyticsRepository(h.db.DB)
	h.settings = repository.NewSettingsRepository(h.db.DB)
}

// Health check
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AuthMe returns the principal behind the presented token
func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	principal := PrincipalFromContext(r.Context())
	if principal == nil {
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// storeError logs err and replies with a 500
func (h *Handlers) storeError(w http.ResponseWriter, message string, err error) {
	h.logger.Error(message, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Message: message})
}

func (h *Handlers) notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorBody{Message: message})
}

func (h *Handlers) badRequest(w http.ResponseWriter, message string, err error) {
	body := errorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, body)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
