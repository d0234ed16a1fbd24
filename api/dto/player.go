package dto

import (
	"time"

	"chessclub/pkg/database/models"
)

// RegisterPlayerRequest is the body of a new roster member.
type RegisterPlayerRequest struct {
	ID        string `json:"id" binding:"omitempty,max=64"`
	Name      string `json:"name" binding:"required,max=100"`
	Grade     string `json:"grade" binding:"omitempty,max=16"`
	Email     string `json:"email" binding:"omitempty,email"`
	EloRating int    `json:"eloRating" binding:"omitempty,min=1"`
}

// Player is the public view of a roster member and its standing.
type Player struct {
	Id          string     `json:"id"`
	Name        string     `json:"name"`
	Grade       string     `json:"grade,omitempty"`
	GamesPlayed int        `json:"gamesPlayed"`
	Wins        int        `json:"wins"`
	Draws       int        `json:"draws"`
	Losses      int        `json:"losses"`
	Points      float64    `json:"points"`
	Rank        int        `json:"rank"`
	EloRating   int        `json:"eloRating"`
	LastActive  *time.Time `json:"lastActive,omitempty"`
}

// FromModel converts a roster member.
func (p *Player) FromModel(player *models.Player) *Player {
	return &Player{
		Id:          player.ID,
		Name:        player.Name,
		Grade:       player.Grade,
		GamesPlayed: player.GamesPlayed,
		Wins:        player.Wins,
		Draws:       player.Draws,
		Losses:      player.Losses,
		Points:      player.Points,
		Rank:        player.Rank,
		EloRating:   player.CurrentRating(),
		LastActive:  player.LastActive,
	}
}

// FromModelSlice converts a ranked list.
func (p *Player) FromModelSlice(players []*models.Player) []*Player {
	result := make([]*Player, len(players))
	for i, player := range players {
		result[i] = p.FromModel(player)
	}
	return result
}
