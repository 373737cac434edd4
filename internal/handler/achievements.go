package handler

import (
	"net/http"

	"lingolens/internal/domain"
	"lingolens/internal/middleware"

	"go.uber.org/zap"
)

func (h *Handler) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	statuses, err := h.achievementService.ListWithProgress(userID)
	if err != nil {
		h.logger.Error("failed to list achievements", zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list achievements")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"achievements": statuses})
}

func (h *Handler) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	newlyEarned, err := h.achievementService.CheckAndAward(userID)
	if err != nil {
		h.logger.Error("achievement check failed", zap.Int64("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "achievement check failed")
		return
	}

	if newlyEarned == nil {
		newlyEarned = []domain.AchievementDef{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"newly_earned": newlyEarned})
}
