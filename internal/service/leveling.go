package service

import (
	"fmt"
	"time"

	"lingolens/internal/domain"
	"lingolens/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// XP curve: the cost of each level grows linearly, with a steeper step in
// each band. Level 1 is free; there is no level cap.
const (
	bandOneStep   = 100 // levels 2-10
	bandTwoStep   = 150 // levels 11-20
	bandThreeStep = 200 // levels 21+
)

// XPRequiredForLevel returns the XP cost of reaching level from level-1.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	switch {
	case level <= 10:
		return bandOneStep * (level - 1)
	case level <= 20:
		return bandTwoStep * (level - 1)
	default:
		return bandThreeStep * (level - 1)
	}
}

// TotalXPForLevel returns the cumulative XP needed to hold level.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 2; l <= level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelFromXP greedily consumes per-level costs until the remaining XP can
// no longer afford the next level.
func LevelFromXP(totalXP int) int {
	level := 1
	remaining := totalXP
	for {
		cost := XPRequiredForLevel(level + 1)
		if remaining < cost {
			return level
		}
		remaining -= cost
		level++
	}
}

// LevelingService derives leveling state from stored XP and records awards
type LevelingService struct {
	profileRepo repository.ProfileRepository
	xpRepo      repository.XPRepository
	logger      *zap.Logger
}

// NewLevelingService creates a new leveling service
func NewLevelingService(
	profileRepo repository.ProfileRepository,
	xpRepo repository.XPRepository,
	logger *zap.Logger,
) *LevelingService {
	return &LevelingService{
		profileRepo: profileRepo,
		xpRepo:      xpRepo,
		logger:      logger,
	}
}

// levelInfoFromXP derives the full leveling state from a total-XP value.
func levelInfoFromXP(totalXP int) *domain.LevelInfo {
	level := LevelFromXP(totalXP)
	within := totalXP - TotalXPForLevel(level)
	toNext := XPRequiredForLevel(level + 1)

	progress := 0
	if toNext > 0 {
		progress = within * 100 / toNext
	}

	return &domain.LevelInfo{
		Level:           level,
		TotalXP:         totalXP,
		XPWithinLevel:   within,
		XPToNext:        toNext,
		ProgressPercent: progress,
	}
}

// GetLevelInfo reads the stored total XP and derives level, within-level XP
// and progress. Total XP is the only ground truth; everything else is computed.
func (s *LevelingService) GetLevelInfo(userID int64) (*domain.LevelInfo, error) {
	profile, err := s.profileRepo.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("get level info: %w", err)
	}
	return levelInfoFromXP(profile.TotalXP), nil
}

// AwardXP appends a ledger entry, increments the profile's total XP and
// refreshes the denormalized level column. Amounts must be positive so that
// total XP never decreases.
func (s *LevelingService) AwardXP(userID int64, amount int, source domain.XPSource, sessionID *string) (*domain.LevelInfo, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("award xp: amount must be positive, got %d", amount)
	}

	tx := &domain.XPTransaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Source:    source,
		Amount:    amount,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
	if err := s.xpRepo.RecordTransaction(tx); err != nil {
		return nil, fmt.Errorf("award xp: %w", err)
	}

	total, err := s.profileRepo.AddXP(userID, amount)
	if err != nil {
		return nil, fmt.Errorf("award xp: %w", err)
	}

	info := levelInfoFromXP(total)
	if err := s.profileRepo.SetLevel(userID, info.Level); err != nil {
		// The level column is only a cache of LevelFromXP(total_xp);
		// a failed refresh is logged, not escalated.
		s.logger.Warn("failed to refresh level column",
			zap.Int64("user_id", userID),
			zap.Int("level", info.Level),
			zap.Error(err),
		)
	}

	s.logger.Info("XP awarded",
		zap.Int64("user_id", userID),
		zap.String("source", string(source)),
		zap.Int("amount", amount),
		zap.Int("total_xp", total),
		zap.Int("level", info.Level),
	)

	return info, nil
}
