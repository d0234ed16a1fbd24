package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameResult is the outcome of a game, seen from the first player.
type GameResult string

const (
	ResultPlayer1Wins GameResult = "player1"
	ResultPlayer2Wins GameResult = "player2"
	ResultDraw        GameResult = "draw"
)

// Valid reports whether the result is one of the known tags.
func (r GameResult) Valid() bool {
	switch r {
	case ResultPlayer1Wins, ResultPlayer2Wins, ResultDraw:
		return true
	}
	return false
}

// GameType classifies a game. Informational only for rating purposes.
type GameType string

const (
	GameTypeLadder     GameType = "ladder"
	GameTypeTournament GameType = "tournament"
	GameTypeFriendly   GameType = "friendly"
	GameTypePractice   GameType = "practice"
)

// Valid reports whether the game type is one of the known tags.
func (t GameType) Valid() bool {
	switch t {
	case GameTypeLadder, GameTypeTournament, GameTypeFriendly, GameTypePractice:
		return true
	}
	return false
}

var (
	ErrMissingParticipant = errors.New("game is missing a participant")
	ErrSameParticipant    = errors.New("game participants must be different players")
	ErrUnknownResult      = errors.New("game has an unknown result")
	ErrMissingGameDate    = errors.New("game has no date")
)

// Game is a single completed match. The game log is the source of truth for every derived value.
type Game struct {
	ID string `gorm:"primaryKey;type:uuid"`

	// Participants, with the display name captured when the game was recorded.
	Player1ID   string `gorm:"type:varchar(64);index;not null"`
	Player1Name string `gorm:"type:varchar(100)"`
	Player2ID   string `gorm:"type:varchar(64);index;not null"`
	Player2Name string `gorm:"type:varchar(100)"`

	Result   GameResult `gorm:"type:varchar(16);not null"`
	GameDate time.Time  `gorm:"type:date;index;not null"`
	GameType GameType   `gorm:"type:varchar(16);default:'ladder'"`

	Notes   string
	Opening string  `gorm:"type:varchar(120)"`
	Endgame string  `gorm:"type:varchar(120)"`
	EventID *string `gorm:"type:varchar(64);index"`

	// Written back after the rating replay.
	Player1RatingChange *int
	Player2RatingChange *int

	Verified   bool `gorm:"default:false"`
	VerifiedBy *string
	VerifiedAt *time.Time

	// Recorded at. Tie-break for games played on the same day.
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// RatingChange is the rating delta applied to each side of a game.
type RatingChange struct {
	Player1 int `json:"player1Change"`
	Player2 int `json:"player2Change"`
}

// Generate the id when the caller didn't.
func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// Validate reports records the batch computations can't use.
func (g *Game) Validate() error {
	if g.Player1ID == "" || g.Player2ID == "" {
		return ErrMissingParticipant
	}
	if g.Player1ID == g.Player2ID {
		return ErrSameParticipant
	}
	if !g.Result.Valid() {
		return ErrUnknownResult
	}
	if g.GameDate.IsZero() {
		return ErrMissingGameDate
	}
	return nil
}

// RatingChange returns the stored rating change, nil if the game was never rated.
func (g *Game) RatingChange() *RatingChange {
	if g.Player1RatingChange == nil || g.Player2RatingChange == nil {
		return nil
	}
	return &RatingChange{Player1: *g.Player1RatingChange, Player2: *g.Player2RatingChange}
}

// Involves reports whether the player took part in the game.
func (g *Game) Involves(playerID string) bool {
	return g.Player1ID == playerID || g.Player2ID == playerID
}

// OpponentOf returns the id of the other participant.
func (g *Game) OpponentOf(playerID string) string {
	if g.Player1ID == playerID {
		return g.Player2ID
	}
	return g.Player1ID
}

// NameOf returns the display name captured for the participant.
func (g *Game) NameOf(playerID string) string {
	if g.Player1ID == playerID {
		return g.Player1Name
	}
	return g.Player2Name
}

// IsWinFor reports whether the player won the game.
func (g *Game) IsWinFor(playerID string) bool {
	return (g.Player1ID == playerID && g.Result == ResultPlayer1Wins) ||
		(g.Player2ID == playerID && g.Result == ResultPlayer2Wins)
}

// IsLossFor reports whether the player lost the game.
func (g *Game) IsLossFor(playerID string) bool {
	return (g.Player1ID == playerID && g.Result == ResultPlayer2Wins) ||
		(g.Player2ID == playerID && g.Result == ResultPlayer1Wins)
}

// IsDraw reports whether the game was drawn.
func (g *Game) IsDraw() bool {
	return g.Result == ResultDraw
}
