package handler

import (
	"net/http"

	"lingolens/internal/domain"
	"lingolens/internal/middleware"

	"go.uber.org/zap"
)

func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "1"

	stats, err := h.statsService.GetUserStats(userID, forceRefresh)
	if err != nil {
		h.logger.Error("failed to get stats", zap.Int64("user_id", userID), zap.Error(err))
		// The statistics screen degrades to a zeroed snapshot.
		stats = &domain.UserStats{Level: 1}
	}

	respondJSON(w, http.StatusOK, stats)
}
