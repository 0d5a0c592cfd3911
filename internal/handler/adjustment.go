package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
	"github.com/amba-app/amba/internal/websocket"
)

type AdjustmentHandler struct {
	adjustments *store.AdjustmentStore
	totals      *store.LeaderboardStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewAdjustmentHandler(adj *store.AdjustmentStore, totals *store.LeaderboardStore, hub *websocket.Hub, logger *slog.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adj, totals: totals, hub: hub, logger: logger}
}

type adjustmentRequest struct {
	AmbassadorID int64  `json:"ambassador_id"`
	Delta        int    `json:"delta"`
	Note         string `json:"note"`
	Date         string `json:"date"`
}

type adjustmentResponse struct {
	Adjustment *model.Adjustment `json:"adjustment"`
	Total      int               `json:"total"`
}

func (h *AdjustmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	adjustment, err := h.adjustments.Create(req.AmbassadorID, req.Delta, req.Note, req.Date)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to create adjustment")
		return
	}

	total, err := h.totals.TotalOf(req.AmbassadorID)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to compute total")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("adjustment", "created", adjustment.ID, map[string]any{
		"ambassador_id": req.AmbassadorID,
		"delta":         req.Delta,
	}))

	writeJSON(w, http.StatusCreated, adjustmentResponse{Adjustment: adjustment, Total: total})
}

// List returns adjustments, optionally filtered by the "ambassador_id"
// query parameter.
func (h *AdjustmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var ambassadorID int64
	if raw := r.URL.Query().Get("ambassador_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ambassador_id"})
			return
		}
		ambassadorID = id
	}

	adjustments, err := h.adjustments.List(ambassadorID)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to list adjustments")
		return
	}
	if adjustments == nil {
		adjustments = []model.Adjustment{}
	}
	writeJSON(w, http.StatusOK, adjustments)
}

func (h *AdjustmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.adjustments.Delete(id); err != nil {
		writeStoreError(w, h.logger, err, "failed to delete adjustment")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("adjustment", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}
