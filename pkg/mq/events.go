package mq

import "time"

// GameRecordedType is the type tag of the event published after a game is stored.
const GameRecordedType = "game.recorded"

// GameRecorded is the body of a game.recorded message.
type GameRecorded struct {
	Type      string `json:"type"`
	GameID    string `json:"game_id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
	Result    string `json:"result"`
	GameDate  string `json:"game_date"`
	Timestamp int64  `json:"timestamp"`
}

// NewGameRecorded fills the type and the timestamp.
func NewGameRecorded(gameID, player1ID, player2ID, result string, gameDate time.Time) GameRecorded {
	return GameRecorded{
		Type:      GameRecordedType,
		GameID:    gameID,
		Player1ID: player1ID,
		Player2ID: player2ID,
		Result:    result,
		GameDate:  gameDate.Format("2006-01-02"),
		Timestamp: time.Now().Unix(),
	}
}
