package handler

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/amba-app/amba/internal/auth"
	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
)

type AuthHandler struct {
	ambassadors   *store.AmbassadorStore
	sessions      *store.SessionStore
	adminPassword string
	sessionTTL    time.Duration
	logger        *slog.Logger
}

func NewAuthHandler(as *store.AmbassadorStore, ss *store.SessionStore, adminPassword string, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		ambassadors:   as,
		sessions:      ss,
		adminPassword: adminPassword,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

type loginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	PIN      string `json:"pin"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token      string            `json:"token"`
	Role       string            `json:"role"`
	ExpiresAt  time.Time         `json:"expires_at"`
	Ambassador *model.Ambassador `json:"ambassador,omitempty"`
}

// Login issues a session token for either role: admins authenticate with
// the configured password, ambassadors with username and PIN.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	switch req.Role {
	case model.RoleAdmin:
		h.loginAdmin(w, req)
	case model.RoleAmbassador:
		h.loginAmbassador(w, req)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "role must be 'admin' or 'amb'"})
	}
}

func (h *AuthHandler) loginAdmin(w http.ResponseWriter, req loginRequest) {
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad admin password"})
		return
	}

	sess, err := h.sessions.Create(model.RoleAdmin, nil, h.sessionTTL)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Role: sess.Role, ExpiresAt: sess.ExpiresAt})
}

func (h *AuthHandler) loginAmbassador(w http.ResponseWriter, req loginRequest) {
	ambassador, err := h.ambassadors.GetByUsername(req.Username)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to look up ambassador")
		return
	}
	if ambassador == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
		return
	}

	ok, err := h.ambassadors.VerifyPIN(ambassador.ID, req.PIN)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to verify PIN")
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
		return
	}

	sess, err := h.sessions.Create(model.RoleAmbassador, &ambassador.ID, h.sessionTTL)
	if err != nil {
		writeStoreError(w, h.logger, err, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:      sess.Token,
		Role:       sess.Role,
		ExpiresAt:  sess.ExpiresAt,
		Ambassador: ambassador,
	})
}

// Logout deletes the calling session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := h.sessions.Delete(ac.SessionID); err != nil {
		writeStoreError(w, h.logger, err, "failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
