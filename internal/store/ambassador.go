package store

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/amba-app/amba/internal/model"
)

type AmbassadorStore struct {
	db *sql.DB
}

func NewAmbassadorStore(db *sql.DB) *AmbassadorStore {
	return &AmbassadorStore{db: db}
}

func scanAmbassador(scanner interface{ Scan(...any) error }) (*model.Ambassador, error) {
	var a model.Ambassador
	err := scanner.Scan(&a.ID, &a.Name, &a.Username, &a.Avatar, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const ambassadorCols = `id, name, username, avatar, created_at, updated_at`

// Create adds an ambassador. Name, username and PIN must be non-empty after
// trimming; the username must be unique ignoring case. The PIN is stored as
// a bcrypt hash. Avatar is held as an opaque string supplied by the caller.
func (s *AmbassadorStore) Create(name, username, pin, avatar string) (*model.Ambassador, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	pin = strings.TrimSpace(pin)

	if name == "" || username == "" || pin == "" {
		return nil, ErrEmptyField
	}

	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM ambassadors WHERE username = ? COLLATE NOCASE`,
		username,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO ambassadors (name, username, pin_hash, avatar) VALUES (?, ?, ?, ?)`,
		name, username, string(hash), avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("insert ambassador: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *AmbassadorStore) GetByID(id int64) (*model.Ambassador, error) {
	row := s.db.QueryRow(`SELECT `+ambassadorCols+` FROM ambassadors WHERE id = ?`, id)
	a, err := scanAmbassador(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ambassador: %w", err)
	}
	return a, nil
}

func (s *AmbassadorStore) GetByUsername(username string) (*model.Ambassador, error) {
	row := s.db.QueryRow(
		`SELECT `+ambassadorCols+` FROM ambassadors WHERE username = ? COLLATE NOCASE`,
		strings.TrimSpace(username),
	)
	a, err := scanAmbassador(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ambassador by username: %w", err)
	}
	return a, nil
}

// List returns all ambassadors in insertion order.
func (s *AmbassadorStore) List() ([]model.Ambassador, error) {
	rows, err := s.db.Query(`SELECT ` + ambassadorCols + ` FROM ambassadors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ambassadors: %w", err)
	}
	defer rows.Close()

	var ambassadors []model.Ambassador
	for rows.Next() {
		a, err := scanAmbassador(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ambassador: %w", err)
		}
		ambassadors = append(ambassadors, *a)
	}
	return ambassadors, rows.Err()
}

// ListWithDayFlags returns every ambassador with their tri-flag log for the
// given day. Days without a log row report all flags unset. An empty date
// means today.
func (s *AmbassadorStore) ListWithDayFlags(date string) ([]model.AmbassadorWithDay, error) {
	day, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT a.id, a.name, a.username, a.avatar, a.created_at, a.updated_at,
		        COALESCE(l.story, 0), COALESCE(l.post, 0), COALESCE(l.product, 0)
		 FROM ambassadors a
		 LEFT JOIN daily_logs l ON l.ambassador_id = a.id AND l.log_date = ?
		 ORDER BY a.id`,
		day,
	)
	if err != nil {
		return nil, fmt.Errorf("list ambassadors with day flags: %w", err)
	}
	defer rows.Close()

	var list []model.AmbassadorWithDay
	for rows.Next() {
		var e model.AmbassadorWithDay
		var story, post, product int
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Username, &e.Avatar, &e.CreatedAt, &e.UpdatedAt,
			&story, &post, &product,
		); err != nil {
			return nil, fmt.Errorf("scan ambassador with day flags: %w", err)
		}
		e.Today = model.DayFlags{Story: story != 0, Post: post != 0, Product: product != 0}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete removes an ambassador. The schema cascades the delete to all of
// their daily logs and adjustments in the same transaction, so no orphaned
// ledger entries can survive.
func (s *AmbassadorStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM ambassadors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ambassador: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyPIN checks a login PIN against the stored hash.
func (s *AmbassadorStore) VerifyPIN(id int64, pin string) (bool, error) {
	var hash string
	err := s.db.QueryRow(`SELECT pin_hash FROM ambassadors WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("get pin hash: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil, nil
}
