package repositories

import (
	"context"
	"fmt"

	"chessclub/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AchievementRepository is the public interface for the earned achievements.
type AchievementRepository interface {
	GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error)
	SaveAchievements(ctx context.Context, achievements []models.PlayerAchievement) error
}

// achievementRepository repository structure.
type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates an achievement repository.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// GetPlayerAchievements returns the stored achievements of a player, oldest first.
func (ar *achievementRepository) GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error) {
	var achievements []models.PlayerAchievement

	err := ar.db.WithContext(ctx).
		Where("player_id = ?", playerId).
		Order("earned_at asc").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the player achievements: %w", err)
	}

	return achievements, nil
}

// SaveAchievements stores new achievements. An already stored one is left untouched.
func (ar *achievementRepository) SaveAchievements(ctx context.Context, achievements []models.PlayerAchievement) error {
	if len(achievements) == 0 {
		return nil
	}

	err := ar.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&achievements).Error
	if err != nil {
		return fmt.Errorf("couldn't save the achievements: %w", err)
	}

	return nil
}
