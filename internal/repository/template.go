package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailboard/mailboard/internal/models"
)

type TemplateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create creates a new email template
func (r *TemplateRepository) Create(t *models.EmailTemplate) error {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO email_templates (id, name, subject, html_content, text_content, thumbnail_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Subject, t.HTMLContent, t.TextContent, t.ThumbnailURL, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID returns a template by ID
func (r *TemplateRepository) GetByID(id string) (*models.EmailTemplate, error) {
	t := &models.EmailTemplate{}
	err := r.db.QueryRow(`
		SELECT id, name, subject, html_content, COALESCE(text_content, ''), COALESCE(thumbnail_url, ''), created_at, updated_at
		FROM email_templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Subject, &t.HTMLContent, &t.TextContent, &t.ThumbnailURL, &t.CreatedAt, &t.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all templates newest first
func (r *TemplateRepository) List() ([]models.EmailTemplate, error) {
	rows, err := r.db.Query(`
		SELECT id, name, subject, html_content, COALESCE(text_content, ''), COALESCE(thumbnail_url, ''), created_at, updated_at
		FROM email_templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.EmailTemplate{}
	for rows.Next() {
		var t models.EmailTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.HTMLContent, &t.TextContent, &t.ThumbnailURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Update updates a template
func (r *TemplateRepository) Update(t *models.EmailTemplate) error {
	t.UpdatedAt = time.Now()
	_, err := r.db.Exec(`
		UPDATE email_templates SET name = ?, subject = ?, html_content = ?, text_content = ?, thumbnail_url = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Subject, t.HTMLContent, t.TextContent, t.ThumbnailURL, t.UpdatedAt, t.ID,
	)
	return err
}

// Delete deletes a template. Returns false if no row existed.
// Campaigns referencing the template keep their dangling template_id.
func (r *TemplateRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM email_templates WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Duplicate clones a template, appending " (Copy)" to its name. Returns
// nil if the source template does not exist.
func (r *TemplateRepository) Duplicate(id string) (*models.EmailTemplate, error) {
	original, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, nil
	}

	clone := &models.EmailTemplate{
		Name:         original.Name + " (Copy)",
		Subject:      original.Subject,
		HTMLContent:  original.HTMLContent,
		TextContent:  original.TextContent,
		ThumbnailURL: original.ThumbnailURL,
	}
	if err := r.Create(clone); err != nil {
		return nil, err
	}
	return clone, nil
}
