package handler

import (
	"net/http"

	"lingolens/internal/middleware"
	"lingolens/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler wires the HTTP API to the progression services
type Handler struct {
	authService        *service.AuthService
	levelingService    *service.LevelingService
	streakService      *service.StreakService
	achievementService *service.AchievementService
	statsService       *service.StatsService
	leaderboardService *service.LeaderboardService
	logger             *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	authService *service.AuthService,
	levelingService *service.LevelingService,
	streakService *service.StreakService,
	achievementService *service.AchievementService,
	statsService *service.StatsService,
	leaderboardService *service.LeaderboardService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		authService:        authService,
		levelingService:    levelingService,
		streakService:      streakService,
		achievementService: achievementService,
		statsService:       statsService,
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// Routes mounts all API routes onto the router
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(h.authService, h.logger))

		r.Get("/profile", h.handleGetProfile)
		r.Post("/activity", h.handleActivity)
		r.Get("/stats", h.handleGetStats)
		r.Get("/achievements", h.handleListAchievements)
		r.Post("/achievements/check", h.handleCheckAchievements)
		r.Get("/leaderboard", h.handleLeaderboard)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
