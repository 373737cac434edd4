package handler

import (
	"net/http"

	"lingolens/internal/domain"
	"lingolens/internal/middleware"

	"go.uber.org/zap"
)

// profileResponse is the payload for the profile screen.
type profileResponse struct {
	UserID int64 `json:"user_id"`
	domain.LevelInfo
	CurrentStreak int `json:"current_streak"`
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	info, err := h.levelingService.GetLevelInfo(userID)
	if err != nil {
		h.logger.Error("failed to get level info", zap.Int64("user_id", userID), zap.Error(err))
		// Degrade to a fresh level-1 profile rather than fail the screen.
		info = &domain.LevelInfo{Level: 1, XPToNext: 100}
	}

	streak, err := h.streakService.Current(userID)
	if err != nil {
		h.logger.Warn("failed to get current streak", zap.Int64("user_id", userID), zap.Error(err))
		streak = 0
	}

	respondJSON(w, http.StatusOK, profileResponse{
		UserID:        userID,
		LevelInfo:     *info,
		CurrentStreak: streak,
	})
}

// handleActivity records today's activity and returns the streak outcome.
func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	result, err := h.streakService.UpdateStreak(userID)
	if err != nil {
		h.logger.Error("failed to update streak", zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to update streak")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
