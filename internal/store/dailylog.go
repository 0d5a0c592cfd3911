package store

import (
	"database/sql"
	"fmt"

	"github.com/amba-app/amba/internal/model"
)

type DailyLogStore struct {
	db *sql.DB
}

func NewDailyLogStore(db *sql.DB) *DailyLogStore {
	return &DailyLogStore{db: db}
}

func scanDailyLog(scanner interface{ Scan(...any) error }) (*model.DailyLog, error) {
	var l model.DailyLog
	var story, post, product int

	err := scanner.Scan(&l.ID, &l.AmbassadorID, &l.Date, &story, &post, &product, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	l.Story = story != 0
	l.Post = post != 0
	l.Product = product != 0
	return &l, nil
}

const dailyLogCols = `id, ambassador_id, log_date, story, post, product, created_at`

// activityColumn maps an activity token to its flag column.
func activityColumn(activity model.Activity) (string, error) {
	switch activity {
	case model.ActivityStory:
		return "story", nil
	case model.ActivityPost:
		return "post", nil
	case model.ActivityProduct:
		return "product", nil
	default:
		return "", ErrUnknownActivity
	}
}

// Mark sets one activity flag for an ambassador on a day, lazily creating
// the day's log row. A flag that is already set is a conflict: each activity
// type counts at most once per ambassador per day. An empty date means today.
func (s *DailyLogStore) Mark(ambassadorID int64, date string, activity model.Activity) (*model.DailyLog, error) {
	column, err := activityColumn(activity)
	if err != nil {
		return nil, err
	}
	day, err := resolveDate(date)
	if err != nil {
		return nil, err
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

	if _, err := tx.Exec(
		`INSERT INTO daily_logs (ambassador_id, log_date) VALUES (?, ?)
		 ON CONFLICT(ambassador_id, log_date) DO NOTHING`,
		ambassadorID, day,
	); err != nil {
		return nil, fmt.Errorf("ensure day log: %w", err)
	}

	var flag int
	if err := tx.QueryRow(
		`SELECT `+column+` FROM daily_logs WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	).Scan(&flag); err != nil {
		return nil, fmt.Errorf("read flag: %w", err)
	}
	if flag != 0 {
		return nil, ErrDuplicateMark
	}

	if _, err := tx.Exec(
		`UPDATE daily_logs SET `+column+` = 1 WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	); err != nil {
		return nil, fmt.Errorf("set flag: %w", err)
	}

	log, err := scanDailyLog(tx.QueryRow(
		`SELECT `+dailyLogCols+` FROM daily_logs WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	))
	if err != nil {
		return nil, fmt.Errorf("get day log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return log, nil
}

// Unmark clears one activity flag for an ambassador on a day. Clearing an
// already-unset flag succeeds (the operation is idempotent); only a missing
// log row for that day is an error.
func (s *DailyLogStore) Unmark(ambassadorID int64, date string, activity model.Activity) (*model.DailyLog, error) {
	column, err := activityColumn(activity)
	if err != nil {
		return nil, err
	}
	day, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE daily_logs SET `+column+` = 0 WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("clear flag: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	log, err := scanDailyLog(tx.QueryRow(
		`SELECT `+dailyLogCols+` FROM daily_logs WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	))
	if err != nil {
		return nil, fmt.Errorf("get day log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return log, nil
}

// GetByDay returns the log for one (ambassador, day), or nil when no
// activity has been recorded.
func (s *DailyLogStore) GetByDay(ambassadorID int64, date string) (*model.DailyLog, error) {
	day, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		`SELECT `+dailyLogCols+` FROM daily_logs WHERE ambassador_id = ? AND log_date = ?`,
		ambassadorID, day,
	)
	l, err := scanDailyLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day log: %w", err)
	}
	return l, nil
}

// ListByAmbassador returns all of an ambassador's logs ordered by date.
func (s *DailyLogStore) ListByAmbassador(ambassadorID int64) ([]model.DailyLog, error) {
	rows, err := s.db.Query(
		`SELECT `+dailyLogCols+` FROM daily_logs WHERE ambassador_id = ? ORDER BY log_date`,
		ambassadorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list day logs: %w", err)
	}
	defer rows.Close()

	var logs []model.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day log: %w", err)
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}
