package store

import (
	"database/sql"
	"fmt"

	"github.com/amba-app/amba/internal/model"
)

const (
	// MaxDelta bounds the magnitude of one adjustment in either direction.
	MaxDelta = 50000
	// maxNoteLen caps the free-text note; longer notes are truncated.
	maxNoteLen = 300
)

type AdjustmentStore struct {
	db *sql.DB
}

func NewAdjustmentStore(db *sql.DB) *AdjustmentStore {
	return &AdjustmentStore{db: db}
}

func scanAdjustment(scanner interface{ Scan(...any) error }) (*model.Adjustment, error) {
	var a model.Adjustment
	err := scanner.Scan(&a.ID, &a.AmbassadorID, &a.Date, &a.Delta, &a.Note, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

const adjustmentCols = `id, ambassador_id, adj_date, delta, note, created_at`

// Create appends an immutable adjustment record. Delta must be nonzero and
// within ±MaxDelta; the note is truncated to its bounded length; an empty
// date means today.
func (s *AdjustmentStore) Create(ambassadorID int64, delta int, note, date string) (*model.Adjustment, error) {
	if delta == 0 {
		return nil, ErrZeroDelta
	}
	if delta > MaxDelta || delta < -MaxDelta {
		return nil, ErrDeltaOutOfRange
	}
	day, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	if runes := []rune(note); len(runes) > maxNoteLen {
		note = string(runes[:maxNoteLen])
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM ambassadors WHERE id = ?`, ambassadorID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check ambassador: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	result, err := tx.Exec(
		`INSERT INTO adjustments (ambassador_id, adj_date, delta, note) VALUES (?, ?, ?, ?)`,
		ambassadorID, day, delta, note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert adjustment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	a, err := scanAdjustment(tx.QueryRow(`SELECT ` + adjustmentCols + ` FROM adjustments WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get adjustment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return a, nil
}

// List returns adjustments ordered by attribution date, ties kept in
// insertion order. An ambassadorID of 0 means all ambassadors.
func (s *AdjustmentStore) List(ambassadorID int64) ([]model.Adjustment, error) {
	query := `SELECT ` + adjustmentCols + ` FROM adjustments ORDER BY adj_date, id`
	args := []any{}
	if ambassadorID != 0 {
		query = `SELECT ` + adjustmentCols + ` FROM adjustments WHERE ambassador_id = ? ORDER BY adj_date, id`
		args = append(args, ambassadorID)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []model.Adjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		adjustments = append(adjustments, *a)
	}
	return adjustments, rows.Err()
}

// Delete removes exactly one adjustment by id.
func (s *AdjustmentStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM adjustments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete adjustment: %w", err)
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
