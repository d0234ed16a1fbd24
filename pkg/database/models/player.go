package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultEloRating is the rating of a player that was never rated.
const DefaultEloRating = 1000

// Player is a registered club member.
// Every aggregate below is a cache that can be rebuilt from the game log.
type Player struct {
	ID    string `gorm:"primaryKey;type:varchar(64)"`
	Name  string `gorm:"type:varchar(100);not null"`
	Grade string `gorm:"type:varchar(16);index"`
	Email string `gorm:"type:varchar(255)"`

	GamesPlayed int
	Wins        int
	Draws       int
	Losses      int
	Points      float64
	Rank        int
	LastActive  *time.Time

	EloRating int `gorm:"default:1000"`

	// Registration time.
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Generate the id when the caller didn't.
func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.EloRating == 0 {
		p.EloRating = DefaultEloRating
	}
	return nil
}

// CurrentRating returns the persisted rating or the default one.
func (p *Player) CurrentRating() int {
	if p.EloRating == 0 {
		return DefaultEloRating
	}
	return p.EloRating
}
