package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/amba-app/amba/internal/config"
	"github.com/amba-app/amba/internal/handler"
	"github.com/amba-app/amba/internal/middleware"
	"github.com/amba-app/amba/internal/store"
	ws "github.com/amba-app/amba/internal/websocket"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	ambassadorH  *handler.AmbassadorHandler
	dailyLogH    *handler.DailyLogHandler
	adjustmentH  *handler.AdjustmentHandler
	leaderboardH *handler.LeaderboardHandler
	settingsH    *handler.SettingsHandler
	authH        *handler.AuthHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	ambassadorStore := store.NewAmbassadorStore(db)
	dailyLogStore := store.NewDailyLogStore(db)
	adjustmentStore := store.NewAdjustmentStore(db)
	leaderboardStore := store.NewLeaderboardStore(db)
	settingsStore := store.NewSettingsStore(db)
	sessionStore := store.NewSessionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		ambassadorH:  handler.NewAmbassadorHandler(ambassadorStore, hub, logger.With("component", "ambassador")),
		dailyLogH:    handler.NewDailyLogHandler(dailyLogStore, leaderboardStore, hub, logger.With("component", "dailylog")),
		adjustmentH:  handler.NewAdjustmentHandler(adjustmentStore, leaderboardStore, hub, logger.With("component", "adjustment")),
		leaderboardH: handler.NewLeaderboardHandler(leaderboardStore, logger.With("component", "leaderboard")),
		settingsH:    handler.NewSettingsHandler(settingsStore, hub, logger.With("component", "settings")),
		authH:        handler.NewAuthHandler(ambassadorStore, sessionStore, cfg.AdminPassword, cfg.SessionTTL, logger.With("component", "auth")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Public routes (no auth required)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	mux.HandleFunc("GET /api/config", s.settingsH.GetConfig)
	mux.HandleFunc("GET /api/leaderboard", s.leaderboardH.Get)
	mux.HandleFunc("GET /api/ambassadors/{id}/history", s.leaderboardH.History)
	mux.HandleFunc("GET /ws", ws.Handler(s.hub, s.logger.With("component", "websocket")))

	// Routes needing a live session of either role
	requireSession := middleware.RequireSession(s.sessionStore)
	mux.Handle("POST /api/logout", requireSession(http.HandlerFunc(s.authH.Logout)))
	mux.Handle("GET /api/me/history", requireSession(http.HandlerFunc(s.leaderboardH.MyHistory)))

	// Admin routes; every ledger mutation goes through here
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /api/admin/ambassadors", s.ambassadorH.List)
	adminMux.HandleFunc("POST /api/admin/ambassadors", s.ambassadorH.Create)
	adminMux.HandleFunc("DELETE /api/admin/ambassadors/{id}", s.ambassadorH.Delete)
	adminMux.HandleFunc("POST /api/admin/mark", s.dailyLogH.Mark)
	adminMux.HandleFunc("POST /api/admin/unmark", s.dailyLogH.Unmark)
	adminMux.HandleFunc("POST /api/admin/adjustments", s.adjustmentH.Create)
	adminMux.HandleFunc("GET /api/admin/adjustments", s.adjustmentH.List)
	adminMux.HandleFunc("DELETE /api/admin/adjustments/{id}", s.adjustmentH.Delete)
	adminMux.HandleFunc("POST /api/admin/end-date", s.settingsH.SetEndDate)

	requireAdmin := middleware.RequireAdmin(s.sessionStore)
	mux.Handle("/api/admin/", requireAdmin(adminMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
