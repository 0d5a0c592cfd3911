package handler

import (
	"log/slog"
	"net/http"

	"github.com/amba-app/amba/internal/auth"
	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
)

type LeaderboardHandler struct {
	leaderboard *store.LeaderboardStore
	logger      *slog.Logger
}

func NewLeaderboardHandler(lb *store.LeaderboardStore, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: lb, logger: logger}
}

// Get returns the ranked leaderboard. Totals are recomputed on every call.
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Leaderboard()
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to compute leaderboard")
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// History returns one ambassador's logs, adjustments, and derived total.
func (h *LeaderboardHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	h.writeHistory(w, id)
}

// MyHistory returns the calling ambassador's own ledger view. Admin
// sessions carry no ambassador id and are rejected.
func (h *LeaderboardHandler) MyHistory(w http.ResponseWriter, r *http.Request) {
	id := auth.AmbassadorID(r.Context())
	if id == 0 {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "ambassador session required"})
		return
	}
	h.writeHistory(w, id)
}

func (h *LeaderboardHandler) writeHistory(w http.ResponseWriter, id int64) {
	history, err := h.leaderboard.History(id)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to load history")
		return
	}
	if history.Logs == nil {
		history.Logs = []model.DailyLog{}
	}
	if history.Adjustments == nil {
		history.Adjustments = []model.Adjustment{}
	}
	writeJSON(w, http.StatusOK, history)
}
