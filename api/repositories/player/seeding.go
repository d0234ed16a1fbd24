package repositories

import (
	"testing"
	"time"

	"chessclub/pkg/database/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedDate = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func seedPlayerTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Clean up existing data
	db.Exec("TRUNCATE TABLE players")

	players := []*models.Player{
		{ID: "anna", Name: "Anna", Grade: "A", EloRating: 1210, CreatedAt: fixedDate},
		{ID: "ben", Name: "Ben", Grade: "B", EloRating: 990, CreatedAt: fixedDate.Add(time.Hour)},
		{ID: "carl", Name: "Carl", Grade: "A", CreatedAt: fixedDate.Add(2 * time.Hour)},
	}

	for _, p := range players {
		require.NoError(t, db.Create(p).Error)
	}
}
