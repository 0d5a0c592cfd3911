package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
	"github.com/amba-app/amba/internal/websocket"
)

type AmbassadorHandler struct {
	store  *store.AmbassadorStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewAmbassadorHandler(s *store.AmbassadorStore, hub *websocket.Hub, logger *slog.Logger) *AmbassadorHandler {
	return &AmbassadorHandler{store: s, hub: hub, logger: logger}
}

type ambassadorRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	PIN      string `json:"pin"`
	Avatar   string `json:"avatar"`
}

// List returns every ambassador with their activity flags for the requested
// day (query parameter "date", default today).
func (h *AmbassadorHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListWithDayFlags(r.URL.Query().Get("date"))
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to list ambassadors")
		return
	}
	if list == nil {
		list = []model.AmbassadorWithDay{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AmbassadorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ambassadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ambassador, err := h.store.Create(req.Name, req.Username, req.PIN, normalizeAvatar(req.Avatar))
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to create ambassador")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("ambassador", "created", ambassador.ID, nil))

	writeJSON(w, http.StatusCreated, ambassador)
}

func (h *AmbassadorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		writeStoreError(w, h.logger, err, "failed to delete ambassador")
		return
	}

	h.hub.Broadcast(websocket.NewEvent("ambassador", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

// normalizeAvatar keeps only references that look like an http(s) URL or an
// inline image; anything else is stored empty. The value is display-only and
// never interpreted by the ledger.
func normalizeAvatar(avatar string) string {
	avatar = strings.TrimSpace(avatar)
	lower := strings.ToLower(avatar)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:image/") {
		return avatar
	}
	return ""
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps the ledger's failure conditions to status codes.
// Anything unrecognized is a persistence failure: logged, reported as 500,
// and never acknowledged as success.
func writeStoreError(w http.ResponseWriter, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicateMark), errors.Is(err, store.ErrDuplicateUsername):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrUnknownActivity),
		errors.Is(err, store.ErrDeltaOutOfRange),
		errors.Is(err, store.ErrZeroDelta),
		errors.Is(err, store.ErrEmptyField),
		errors.Is(err, store.ErrBadDate):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		logger.Error(fallback, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}
