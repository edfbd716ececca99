package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mailboard/mailboard/internal/campaign"
	"github.com/mailboard/mailboard/internal/models"
)

// CampaignList handles GET /api/campaigns?status=
func (h *Handlers) CampaignList(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaignStore.List(models.CampaignListFilter{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.storeError(w, "Failed to fetch campaigns", err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// CampaignGet handles GET /api/campaigns/{id}, joining analytics and template
func (h *Handlers) CampaignGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.campaignStore.GetByID(id)
	if err != nil {
		h.storeError(w, "Failed to fetch campaign", err)
		return
	}
	if c == nil {
		h.notFound(w, "Campaign not found")
		return
	}

	detail := models.CampaignDetail{Campaign: *c}

	detail.Analytics, err = h.analytics.GetByCampaignID(id)
	if err != nil {
		h.storeError(w, "Failed to fetch campaign", err)
		return
	}

	// Template deletion leaves a dangling reference; a missing template
	// is served as null rather than an error.
	if c.TemplateID != "" {
		detail.Template, err = h.templates.GetByID(c.TemplateID)
		if err != nil {
			h.storeError(w, "Failed to fetch campaign", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, detail)
}

// CampaignCreate handles POST /api/campaigns
func (h *Handlers) CampaignCreate(w http.ResponseWriter, r *http.Request) {
	var in campaign.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		h.badRequest(w, "Failed to create campaign", err)
		return
	}

	c, err := h.campaigns.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, campaign.ErrValidation) {
			h.badRequest(w, "Failed to create campaign", err)
			return
		}
		h.storeError(w, "Failed to create campaign", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

type campaignPatchRequest struct {
	Name        *string            `json:"name"`
	Subject     *string            `json:"subject"`
	Status      *string            `json:"status"`
	FromName    *string            `json:"fromName"`
	FromEmail   *string            `json:"fromEmail"`
	TemplateID  *string            `json:"templateId"`
	Lists       *models.StringList `json:"lists"`
	ScheduledAt *time.Time         `json:"scheduledAt"`
	SentAt      *time.Time         `json:"sentAt"`
}

// CampaignUpdate handles PATCH /api/campaigns/{id}. The status field is
// writable here so an external delivery subsystem can report the
// sending -> sent/failed transition.
func (h *Handlers) CampaignUpdate(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaignStore.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to update campaign", err)
		return
	}
	if c == nil {
		h.notFound(w, "Campaign not found")
		return
	}

	var req campaignPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badRequest(w, "Failed to update campaign", err)
		return
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Subject != nil {
		c.Subject = *req.Subject
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.FromName != nil {
		c.FromName = *req.FromName
	}
	if req.FromEmail != nil {
		c.FromEmail = *req.FromEmail
	}
	if req.TemplateID != nil {
		c.TemplateID = *req.TemplateID
	}
	if req.Lists != nil {
		c.Lists = *req.Lists
	}
	if req.ScheduledAt != nil {
		c.ScheduledAt = req.ScheduledAt
	}
	if req.SentAt != nil {
		c.SentAt = req.SentAt
	}

	if err := h.campaignStore.Update(c); err != nil {
		h.storeError(w, "Failed to update campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CampaignDelete handles DELETE /api/campaigns/{id}
func (h *Handlers) CampaignDelete(w http.ResponseWriter, r *http.Request) {
	err := h.campaigns.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			h.notFound(w, "Campaign not found")
			return
		}
		h.storeError(w, "Failed to delete campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Campaign deleted successfully"})
}

type campaignSendResponse struct {
	models.Campaign
	Message string `json:"message"`
}

// CampaignSend handles POST /api/campaigns/{id}/send
func (h *Handlers) CampaignSend(w http.ResponseWriter, r *http.Request) {
	c, recipients, err := h.campaigns.Send(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrNotFound):
			h.notFound(w, "Campaign not found")
		case errors.Is(err, campaign.ErrAlreadySent):
			h.badRequest(w, "Campaign already sent or sending", nil)
		default:
			h.storeError(w, "Failed to send campaign", err)
		}
		return
	}

	h.metrics.CampaignSendsTotal.Inc()
	h.metrics.CampaignRecipientsTotal.Add(float64(recipients))

	writeJSON(w, http.StatusOK, campaignSendResponse{
		Campaign: *c,
		Message:  fmt.Sprintf("Campaign queued for sending to %d subscribers", recipients),
	})
}

// CampaignAnalytics handles GET /api/campaigns/{id}/analytics
func (h *Handlers) CampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.analytics.GetByCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		h.storeError(w, "Failed to fetch campaign analytics", err)
		return
	}
	if a == nil {
		h.notFound(w, "Campaign analytics not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}
