package handler

import (
	"net/http"
	"strconv"

	"lingolens/internal/domain"

	"go.uber.org/zap"
)

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.leaderboardService.Top(limit, false)
	if err != nil {
		h.logger.Error("failed to get leaderboard", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get leaderboard")
		return
	}

	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"leaderboard": entries})
}
