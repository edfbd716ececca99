package repository

import (
	"database/sql"

	"github.com/mailboard/mailboard/internal/models"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// GetByCampaignID returns the analytics row for a campaign
func (r *AnalyticsRepository) GetByCampaignID(campaignID string) (*models.CampaignAnalytics, error) {
	a := &models.CampaignAnalytics{}
	err := r.db.QueryRow(`
		SELECT campaign_id, sent, delivered, bounced, complained, unsubscribed, total_subscribers, updated_at
		FROM campaign_analytics WHERE campaign_id = ?`, campaignID,
	).Scan(&a.CampaignID, &a.Sent, &a.Delivered, &a.Bounced, &a.Complained, &a.Unsubscribed, &a.TotalSubscribers, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
