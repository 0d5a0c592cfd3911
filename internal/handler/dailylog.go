package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
	"github.com/amba-app/amba/internal/websocket"
)

type DailyLogHandler struct {
	logs   *store.DailyLogStore
	totals *store.LeaderboardStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewDailyLogHandler(logs *store.DailyLogStore, totals *store.LeaderboardStore, hub *websocket.Hub, logger *slog.Logger) *DailyLogHandler {
	return &DailyLogHandler{logs: logs, totals: totals, hub: hub, logger: logger}
}

type markRequest struct {
	AmbassadorID int64  `json:"ambassador_id"`
	Date         string `json:"date"`
	Type         string `json:"type"`
}

type markResponse struct {
	Log   *model.DailyLog `json:"log"`
	Total int             `json:"total"`
}

func (h *DailyLogHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	log, err := h.logs.Mark(req.AmbassadorID, req.Date, model.Activity(req.Type))
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to mark activity")
		return
	}

	total, err := h.totals.TotalOf(req.AmbassadorID)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to compute total")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("log", "marked", log.ID, map[string]any{
		"ambassador_id": req.AmbassadorID,
		"date":          log.Date,
		"activity":      req.Type,
	}))

	writeJSON(w, http.StatusOK, markResponse{Log: log, Total: total})
}

func (h *DailyLogHandler) Unmark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	log, err := h.logs.Unmark(req.AmbassadorID, req.Date, model.Activity(req.Type))
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to unmark activity")
		return
	}

	total, err := h.totals.TotalOf(req.AmbassadorID)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to compute total")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("log", "unmarked", log.ID, map[string]any{
		"ambassador_id": req.AmbassadorID,
		"date":          log.Date,
		"activity":      req.Type,
	}))

	writeJSON(w, http.StatusOK, markResponse{Log: log, Total: total})
}
