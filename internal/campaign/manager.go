// Package campaign implements the campaign lifecycle: creation with a
// paired analytics row, the draft -> sending transition with its
// recipient snapshot, and cascading deletion.
package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mailboard/mailboard/internal/models"
	"github.com/mailboard/mailboard/internal/repository"
)

var (
	ErrNotFound    = errors.New("campaign not found")
	ErrAlreadySent = errors.New("campaign already sent or sending")
	ErrValidation  = errors.New("invalid campaign")
)

// Manager owns campaign state transitions
type Manager struct {
	db        *sql.DB
	campaigns *repository.CampaignRepository
	templates *repository.TemplateRepository
	logger    *slog.Logger
}

func NewManager(db *sql.DB, logger *slog.Logger) *Manager {
	return &Manager{
		db:        db,
		campaigns: repository.NewCampaignRepository(db),
		templates: repository.NewTemplateRepository(db),
		logger:    logger.With("component", "campaign"),
	}
}

// CreateInput holds the operator-supplied campaign fields
type CreateInput struct {
	Name        string            `json:"name"`
	Subject     string            `json:"subject"`
	FromName    string            `json:"fromName"`
	FromEmail   string            `json:"fromEmail"`
	TemplateID  string            `json:"templateId"`
	Lists       models.StringList `json:"lists"`
	ScheduledAt *time.Time        `json:"scheduledAt"`
}

// Create validates the input and persists the campaign as a draft with a
// zeroed analytics row.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*models.Campaign, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if in.TemplateID != "" {
		tmpl, err := m.templates.GetByID(in.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("template lookup failed: %w", err)
		}
		if tmpl == nil {
			return nil, fmt.Errorf("%w: template %s not found", ErrValidation, in.TemplateID)
		}
	}

	c := &models.Campaign{
		Name:        strings.TrimSpace(in.Name),
		Subject:     strings.TrimSpace(in.Subject),
		Status:      models.CampaignDraft,
		FromName:    strings.TrimSpace(in.FromName),
		FromEmail:   strings.TrimSpace(in.FromEmail),
		TemplateID:  in.TemplateID,
		Lists:       in.Lists,
		ScheduledAt: in.ScheduledAt,
	}
	if err := m.campaigns.Create(c); err != nil {
		return nil, err
	}

	m.logger.Info("campaign created", "id", c.ID, "name", c.Name)
	return c, nil
}

func validate(in CreateInput) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"subject", in.Subject},
		{"fromName", in.FromName},
		{"fromEmail", in.FromEmail},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(in.FromEmail, "@") {
		return fmt.Errorf("%w: fromEmail is not a valid address", ErrValidation)
	}
	return nil
}

// Send transitions a campaign from draft to sending. It snapshots the
// eligible recipients as pending campaign_subscribers rows and records
// the recipient count on the analytics row. The whole operation runs in
// one transaction; the guarded status update is executed first so that
// of two concurrent sends only one can pass.
//
// No mail is delivered here. Send records intent; actual transport and
// the sending -> sent/failed transition belong to an external delivery
// subsystem.
func (m *Manager) Send(ctx context.Context, id string) (*models.Campaign, int, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET status = ?, sent_at = ?, updated_at = ?
		WHERE id = ? AND status NOT IN (?, ?)`,
		models.CampaignSending, now, now, id, models.CampaignSending, models.CampaignSent,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to update campaign status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM campaigns WHERE id = ?", id).Scan(&exists); err != nil {
			return nil, 0, err
		}
		if exists == 0 {
			return nil, 0, ErrNotFound
		}
		return nil, 0, ErrAlreadySent
	}

	var targetLists models.StringList
	if err := tx.QueryRowContext(ctx, "SELECT lists FROM campaigns WHERE id = ?", id).Scan(&targetLists); err != nil {
		return nil, 0, err
	}

	eligible, err := eligibleSubscribers(ctx, tx, targetLists)
	if err != nil {
		return nil, 0, err
	}

	for _, subscriberID := range eligible {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO campaign_subscribers (id, campaign_id, subscriber_id, status, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), id, subscriberID, "pending", now,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to snapshot recipient: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE campaign_analytics SET total_subscribers = ?, updated_at = ?
		WHERE campaign_id = ?`,
		len(eligible), now, id,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to update analytics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	m.logger.Info("campaign queued", "id", id, "recipients", len(eligible))

	c, err := m.campaigns.GetByID(id)
	if err != nil {
		return nil, 0, err
	}
	return c, len(eligible), nil
}

// eligibleSubscribers returns the IDs of active subscribers matching the
// target lists. An empty target list matches every active subscriber;
// otherwise any shared list membership qualifies.
func eligibleSubscribers(ctx context.Context, tx *sql.Tx, targetLists models.StringList) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT id, lists FROM subscribers WHERE status = ?", models.SubscriberActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eligible []string
	for rows.Next() {
		var id string
		var lists models.StringList
		if err := rows.Scan(&id, &lists); err != nil {
			return nil, err
		}
		if len(targetLists) == 0 || lists.Intersects(targetLists) {
			eligible = append(eligible, id)
		}
	}
	return eligible, rows.Err()
}

// Delete removes a campaign with its recipient snapshot and analytics
func (m *Manager) Delete(ctx context.Context, id string) error {
	found, err := m.campaigns.Delete(id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	m.logger.Info("campaign deleted", "id", id)
	return nil
}
