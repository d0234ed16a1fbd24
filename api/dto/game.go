package dto

import (
	"time"

	"chessclub/pkg/database/models"
)

// RecordGameRequest is the body of a new game.
// Names are only needed for players outside the roster.
type RecordGameRequest struct {
	Player1ID   string  `json:"player1Id" binding:"required"`
	Player1Name string  `json:"player1Name"`
	Player2ID   string  `json:"player2Id" binding:"required,nefield=Player1ID"`
	Player2Name string  `json:"player2Name"`
	Result      string  `json:"result" binding:"required,oneof=player1 player2 draw"`
	GameDate    string  `json:"gameDate" binding:"required,datetime=2006-01-02"`
	GameType    string  `json:"gameType" binding:"omitempty,oneof=ladder tournament friendly practice"`
	Notes       string  `json:"notes"`
	Opening     string  `json:"opening"`
	Endgame     string  `json:"endgame"`
	EventID     *string `json:"eventId"`
}

// UpdateGameRequest carries the annotations that may change after recording.
type UpdateGameRequest struct {
	Notes   *string `json:"notes"`
	Opening *string `json:"opening"`
	Endgame *string `json:"endgame"`
	EventID *string `json:"eventId"`
}

// VerifyGameRequest is the body of a game verification.
type VerifyGameRequest struct {
	VerifiedBy string `json:"verifiedBy" binding:"required"`
}

// Game is the public view of a game.
type Game struct {
	Id           string               `json:"id"`
	Player1Id    string               `json:"player1Id"`
	Player1Name  string               `json:"player1Name"`
	Player2Id    string               `json:"player2Id"`
	Player2Name  string               `json:"player2Name"`
	Result       string               `json:"result"`
	GameDate     string               `json:"gameDate"`
	GameType     string               `json:"gameType"`
	Notes        string               `json:"notes,omitempty"`
	Opening      string               `json:"opening,omitempty"`
	Endgame      string               `json:"endgame,omitempty"`
	EventId      *string              `json:"eventId,omitempty"`
	RatingChange *models.RatingChange `json:"ratingChange,omitempty"`
	Verified     bool                 `json:"verified"`
	VerifiedBy   *string              `json:"verifiedBy,omitempty"`
	VerifiedAt   *time.Time           `json:"verifiedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// FromModel converts a stored game.
func (g *Game) FromModel(game *models.Game) *Game {
	return &Game{
		Id:           game.ID,
		Player1Id:    game.Player1ID,
		Player1Name:  game.Player1Name,
		Player2Id:    game.Player2ID,
		Player2Name:  game.Player2Name,
		Result:       string(game.Result),
		GameDate:     game.GameDate.Format("2006-01-02"),
		GameType:     string(game.GameType),
		Notes:        game.Notes,
		Opening:      game.Opening,
		Endgame:      game.Endgame,
		EventId:      game.EventID,
		RatingChange: game.RatingChange(),
		Verified:     game.Verified,
		VerifiedBy:   game.VerifiedBy,
		VerifiedAt:   game.VerifiedAt,
		CreatedAt:    game.CreatedAt,
	}
}

// FromModelSlice converts a list of stored games.
func (g *Game) FromModelSlice(games []*models.Game) []*Game {
	result := make([]*Game, len(games))
	for i, game := range games {
		result[i] = g.FromModel(game)
	}
	return result
}

// RecordedGame is the answer to a new game.
type RecordedGame struct {
	Game         *Game                `json:"game"`
	RatingChange *models.RatingChange `json:"ratingChange,omitempty"`
}
