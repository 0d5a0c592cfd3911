package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/amba-app/amba/internal/store"
	"github.com/amba-app/amba/internal/websocket"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewSettingsHandler(s *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: s, hub: hub, logger: logger}
}

type configResponse struct {
	EndDate *string `json:"endDate"`
}

// GetConfig returns the public program configuration: the countdown end
// date, or null when none is set.
func (h *SettingsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	date, ok, err := h.settings.GetEndDate()
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to read config")
		return
	}

	var resp configResponse
	if ok {
		resp.EndDate = &date
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetEndDate updates the program end date. An empty date clears it.
func (h *SettingsHandler) SetEndDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.settings.SetEndDate(req.Date); err != nil {
		writeStoreError(w, h.logger, err, "failed to set end date")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("config", "updated", 0, map[string]any{"end_date": req.Date}))

	h.GetConfig(w, r)
}
