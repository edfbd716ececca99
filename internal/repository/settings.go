package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mailboard/mailboard/internal/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns a setting by key, or nil if absent
func (r *SettingsRepository) Get(key string) (*models.Setting, error) {
	s := &models.Setting{}
	var value string
	err := r.db.QueryRow(`
		SELECT key, value, updated_at FROM settings WHERE key = ?`, key,
	).Scan(&s.Key, &value, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Value = json.RawMessage(value)
	return s, nil
}

// GetAll returns every setting as a key -> value map
func (r *SettingsRepository) GetAll() (map[string]json.RawMessage, error) {
	rows, err := r.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]json.RawMessage{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		result[key] = json.RawMessage(value)
	}
	return result, rows.Err()
}

// Put upserts a setting and returns the stored record. The second return
// value is true when a new row was created rather than updated.
func (r *SettingsRepository) Put(key string, value json.RawMessage) (*models.Setting, bool, error) {
	existing, err := r.Get(key)
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	_, err = r.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now,
	)
	if err != nil {
		return nil, false, err
	}

	return &models.Setting{Key: key, Value: value, UpdatedAt: now}, existing == nil, nil
}

// Delete removes a setting. Returns false if no row existed.
func (r *SettingsRepository) Delete(key string) (bool, error) {
	res, err := r.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
