package store

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/scoring"
)

// LeaderboardStore derives ranked views over the whole ledger. It never
// mutates anything; totals are recomputed from logs and adjustments on every
// call, so a deleted log or adjustment changes the total immediately.
type LeaderboardStore struct {
	db          *sql.DB
	ambassadors *AmbassadorStore
	logs        *DailyLogStore
	adjustments *AdjustmentStore
}

func NewLeaderboardStore(db *sql.DB) *LeaderboardStore {
	return &LeaderboardStore{
		db:          db,
		ambassadors: NewAmbassadorStore(db),
		logs:        NewDailyLogStore(db),
		adjustments: NewAdjustmentStore(db),
	}
}

// TotalOf recomputes one ambassador's lifetime total.
func (s *LeaderboardStore) TotalOf(ambassadorID int64) (int, error) {
	logs, err := s.logs.ListByAmbassador(ambassadorID)
	if err != nil {
		return 0, fmt.Errorf("logs for total: %w", err)
	}
	adjustments, err := s.adjustments.List(ambassadorID)
	if err != nil {
		return 0, fmt.Errorf("adjustments for total: %w", err)
	}
	return scoring.Total(logs, adjustments), nil
}

// Leaderboard returns every ambassador with their total, highest first.
// Equal totals keep insertion order: the sort is stable over the id-ordered
// ambassador list, so display order among ties is deterministic.
func (s *LeaderboardStore) Leaderboard() ([]model.LeaderboardEntry, error) {
	ambassadors, err := s.ambassadors.List()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(ambassadors))
	for _, a := range ambassadors {
		total, err := s.TotalOf(a.ID)
		if err != nil {
			return nil, fmt.Errorf("total for ambassador %d: %w", a.ID, err)
		}
		entries = append(entries, model.LeaderboardEntry{Ambassador: a, Total: total})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})
	return entries, nil
}

// History returns an ambassador's full ledger view: date-ordered logs, their
// adjustments, and the derived total.
func (s *LeaderboardStore) History(ambassadorID int64) (*model.AmbassadorHistory, error) {
	a, err := s.ambassadors.GetByID(ambassadorID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	logs, err := s.logs.ListByAmbassador(ambassadorID)
	if err != nil {
		return nil, err
	}
	adjustments, err := s.adjustments.List(ambassadorID)
	if err != nil {
		return nil, err
	}

	return &model.AmbassadorHistory{
		Ambassador:  *a,
		Logs:        logs,
		Adjustments: adjustments,
		Total:       scoring.Total(logs, adjustments),
	}, nil
}
