package store

import (
	"database/sql"
	"fmt"
	"time"
)

const endDateKey = "end_date"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// GetEndDate returns the program end date and whether one is set.
func (s *SettingsStore) GetEndDate() (string, bool, error) {
	value, err := s.Get(endDateKey)
	if err == ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// SetEndDate stores the program end date. An empty date clears it.
func (s *SettingsStore) SetEndDate(date string) error {
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return ErrBadDate
		}
	}
	return s.Set(endDateKey, date)
}
