package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailboard/mailboard/internal/models"
)

type SubscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Create creates a new subscriber
func (r *SubscriberRepository) Create(s *models.Subscriber) error {
	s.ID = uuid.New().String()
	if s.Status == "" {
		s.Status = models.SubscriberActive
	}
	if s.Lists == nil {
		s.Lists = models.StringList{}
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt

	_, err := r.db.Exec(`
		INSERT INTO subscribers (id, email, status, lists, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Email, s.Status, s.Lists, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

// GetByID returns a subscriber by ID
func (r *SubscriberRepository) GetByID(id string) (*models.Subscriber, error) {
	s := &models.Subscriber{}
	err := r.db.QueryRow(`
		SELECT id, email, status, lists, created_at, updated_at
		FROM subscribers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Email, &s.Status, &s.Lists, &s.CreatedAt, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns subscribers newest first, with optional filtering. The
// status filter runs in SQL; list membership is matched against the JSON
// array after scanning.
func (r *SubscriberRepository) List(filter models.SubscriberListFilter) ([]models.Subscriber, error) {
	query := `
		SELECT id, email, status, lists, created_at, updated_at
		FROM subscribers`
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

	subscribers := []models.Subscriber{}
	for rows.Next() {
		var s models.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Status, &s.Lists, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if filter.List != "" && !s.Lists.Contains(filter.List) {
			continue
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

// ListActive returns all active subscribers
func (r *SubscriberRepository) ListActive() ([]models.Subscriber, error) {
	return r.List(models.SubscriberListFilter{Status: models.SubscriberActive})
}

// Update updates a subscriber
func (r *SubscriberRepository) Update(s *models.Subscriber) error {
	s.UpdatedAt = time.Now()
	_, err := r.db.Exec(`
		UPDATE subscribers SET email = ?, status = ?, lists = ?, updated_at = ?
		WHERE id = ?`,
		s.Email, s.Status, s.Lists, s.UpdatedAt, s.ID,
	)
	return err
}

// Delete deletes a subscriber. Returns false if no row existed.
func (r *SubscriberRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM subscribers WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
