package repositories

import (
	"testing"
	"time"

	"chessclub/pkg/database/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedDate = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)

func seedGameTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Clean up existing data
	db.Exec("TRUNCATE TABLE games")

	event := "autumn-cup"
	games := []*models.Game{
		{ID: "00000000-0000-0000-0000-000000000001", Player1ID: "anna", Player1Name: "Anna", Player2ID: "ben", Player2Name: "Ben", Result: models.ResultPlayer1Wins, GameType: models.GameTypeLadder, GameDate: fixedDate, CreatedAt: fixedDate.Add(18 * time.Hour)},
		{ID: "00000000-0000-0000-0000-000000000002", Player1ID: "ben", Player1Name: "Ben", Player2ID: "carl", Player2Name: "Carl", Result: models.ResultDraw, GameType: models.GameTypeTournament, GameDate: fixedDate.AddDate(0, 0, 1), EventID: &event, CreatedAt: fixedDate.AddDate(0, 0, 1).Add(18 * time.Hour)},
		{ID: "00000000-0000-0000-0000-000000000003", Player1ID: "carl", Player1Name: "Carl", Player2ID: "anna", Player2Name: "Anna", Result: models.ResultPlayer2Wins, GameType: models.GameTypeFriendly, GameDate: fixedDate.AddDate(0, 0, 2), CreatedAt: fixedDate.AddDate(0, 0, 2).Add(18 * time.Hour)},
	}

	for _, game := range games {
		require.NoError(t, db.Create(game).Error)
	}
}
