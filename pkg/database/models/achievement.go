package models

import "time"

// PlayerAchievement is a badge earned the first time a predicate held over the player history.
// Never revoked once stored.
type PlayerAchievement struct {
	ID          string    `gorm:"primaryKey;type:varchar(160)" json:"id"`
	PlayerID    string    `gorm:"type:varchar(64);uniqueIndex:idx_player_achievement_type,priority:1;not null" json:"playerId"`
	Type        string    `gorm:"type:varchar(32);uniqueIndex:idx_player_achievement_type,priority:2;not null" json:"type"`
	Title       string    `gorm:"type:varchar(64)" json:"title"`
	Description string    `json:"description"`
	GameID      string    `gorm:"type:uuid" json:"gameId"`
	EarnedAt    time.Time `json:"earnedAt"`
}
