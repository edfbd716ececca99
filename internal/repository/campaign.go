package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailboard/mailboard/internal/models"
)

type CampaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a campaign together with its zeroed analytics row in a
// single transaction. Every campaign has exactly one analytics row.
func (r *CampaignRepository) Create(c *models.Campaign) error {
	c.ID = uuid.New().String()
	if c.Status == "" {
		c.Status = models.CampaignDraft
	}
	if c.Lists == nil {
		c.Lists = models.StringList{}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO campaigns (id, name, subject, status, from_name, from_email, template_id, lists, scheduled_at, sent_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Subject, c.Status, c.FromName, c.FromEmail, nullString(c.TemplateID), c.Lists, c.ScheduledAt, c.SentAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO campaign_analytics (campaign_id, updated_at) VALUES (?, ?)`,
		c.ID, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create campaign analytics: %w", err)
	}

	return tx.Commit()
}

// GetByID returns a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	return scanCampaign(r.db.QueryRow(`
		SELECT id, name, subject, status, from_name, from_email, COALESCE(template_id, ''), lists, scheduled_at, sent_at, created_at, updated_at
		FROM campaigns WHERE id = ?`, id))
}

// List returns campaigns newest first, optionally filtered by status
func (r *CampaignRepository) List(filter models.CampaignListFilter) ([]models.Campaign, error) {
	query := `
		SELECT id, name, subject, status, from_name, from_email, COALESCE(template_id, ''), lists, scheduled_at, sent_at, created_at, updated_at
		FROM campaigns`
	args := []any{}

	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaignRow(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// ListRecentSent returns up to limit sent campaigns, most recently sent first
func (r *CampaignRepository) ListRecentSent(limit int) ([]models.Campaign, error) {
	rows, err := r.db.Query(`
		SELECT id, name, subject, status, from_name, from_email, COALESCE(template_id, ''), lists, scheduled_at, sent_at, created_at, updated_at
		FROM campaigns WHERE status = ? ORDER BY sent_at DESC LIMIT ?`,
		models.CampaignSent, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaignRow(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// Update updates a campaign
func (r *CampaignRepository) Update(c *models.Campaign) error {
	c.UpdatedAt = time.Now()
	_, err := r.db.Exec(`
		UPDATE campaigns SET name = ?, subject = ?, status = ?, from_name = ?, from_email = ?, template_id = ?, lists = ?, scheduled_at = ?, sent_at = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Subject, c.Status, c.FromName, c.FromEmail, nullString(c.TemplateID), c.Lists, c.ScheduledAt, c.SentAt, c.UpdatedAt, c.ID,
	)
	return err
}

// Delete removes a campaign and cascades to its recipient snapshot and
// analytics rows first, inside one transaction. Returns false if the
// campaign did not exist.
func (r *CampaignRepository) Delete(id string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM campaign_subscribers WHERE campaign_id = ?", id); err != nil {
		return false, fmt.Errorf("failed to delete campaign subscribers: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM campaign_analytics WHERE campaign_id = ?", id); err != nil {
		return false, fmt.Errorf("failed to delete campaign analytics: %w", err)
	}

	res, err := tx.Exec("DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListSubscribers returns the recipient snapshot rows for a campaign
func (r *CampaignRepository) ListSubscribers(campaignID string) ([]models.CampaignSubscriber, error) {
	rows, err := r.db.Query(`
		SELECT id, campaign_id, subscriber_id, status, created_at
		FROM campaign_subscribers WHERE campaign_id = ? ORDER BY created_at`, campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.CampaignSubscriber{}
	for rows.Next() {
		var cs models.CampaignSubscriber
		if err := rows.Scan(&cs.ID, &cs.CampaignID, &cs.SubscriberID, &cs.Status, &cs.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, cs)
	}
	return links, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row *sql.Row) (*models.Campaign, error) {
	c, err := scanCampaignRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanCampaignRow(row rowScanner) (*models.Campaign, error) {
	c := &models.Campaign{}
	var scheduledAt, sentAt sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Subject, &c.Status, &c.FromName, &c.FromEmail, &c.TemplateID, &c.Lists, &scheduledAt, &sentAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		c.ScheduledAt = &scheduledAt.Time
	}
	if sentAt.Valid {
		c.SentAt = &sentAt.Time
	}
	return c, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
