package models

import "time"

// Campaign statuses. A campaign only moves forward:
// draft -> sending -> sent (or failed). The sending -> sent/failed
// transition is driven by an external delivery subsystem.
const (
	CampaignDraft     = "draft"
	CampaignScheduled = "scheduled"
	CampaignSending   = "sending"
	CampaignSent      = "sent"
	CampaignFailed    = "failed"
)

// Campaign represents an email campaign
type Campaign struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Status      string     `json:"status"`
	FromName    string     `json:"fromName"`
	FromEmail   string     `json:"fromEmail"`
	TemplateID  string     `json:"templateId,omitempty"`
	Lists       StringList `json:"lists"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CampaignSubscriber is the per-recipient snapshot row created when a
// campaign transitions to sending
type CampaignSubscriber struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaignId"`
	SubscriberID string    `json:"subscriberId"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CampaignAnalytics holds per-campaign delivery counters (1:1 with Campaign)
type CampaignAnalytics struct {
	CampaignID       string    `json:"campaignId"`
	Sent             int       `json:"sent"`
	Delivered        int       `json:"delivered"`
	Bounced          int       `json:"bounced"`
	Complained       int       `json:"complained"`
	Unsubscribed     int       `json:"unsubscribed"`
	TotalSubscribers int       `json:"totalSubscribers"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CampaignDetail is a campaign joined with its analytics and template
type CampaignDetail struct {
	Campaign
	Analytics *CampaignAnalytics `json:"analytics"`
	Template  *EmailTemplate     `json:"template"`
}

// CampaignListFilter for filtering campaigns
type CampaignListFilter struct {
	Status string
}
