package rankingservice

import (
	"time"

	"chessclub/api/services/testutil"
	"chessclub/pkg/database/models"

	"gorm.io/gorm"
)

var registration = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

// Helper to initialize the mocks.
func setupTestService() (*RankingService, *testutil.MockGameRepository, *testutil.MockPlayerRepository, *testutil.MockMemCache, *testutil.MockRankingRedisClient) {
	mockGameRepo := new(testutil.MockGameRepository)
	mockPlayerRepo := new(testutil.MockPlayerRepository)
	mockMemCache := new(testutil.MockMemCache)
	mockRedis := new(testutil.MockRankingRedisClient)

	service := &RankingService{
		db:               new(gorm.DB),
		memCache:         mockMemCache,
		redis:            mockRedis,
		GameRepository:   mockGameRepo,
		PlayerRepository: mockPlayerRepo,
	}

	return service, mockGameRepo, mockPlayerRepo, mockMemCache, mockRedis
}

func createRoster() []*models.Player {
	return []*models.Player{
		{ID: "anna", Name: "Anna", Grade: "A", EloRating: 1100, CreatedAt: registration},
		{ID: "ben", Name: "Ben", Grade: "B", EloRating: 1000, CreatedAt: registration},
		{ID: "carl", Name: "Carl", Grade: "A", EloRating: 950, CreatedAt: registration},
	}
}

func createGames() []*models.Game {
	date := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	return []*models.Game{
		{ID: "g1", Player1ID: "ben", Player2ID: "anna", Result: models.ResultPlayer1Wins, GameDate: date},
		{ID: "g2", Player1ID: "ben", Player2ID: "carl", Result: models.ResultDraw, GameDate: date.AddDate(0, 0, 1)},
	}
}

// The ladder built from createGames and createRoster.
func createExpectedRankings() []*models.Player {
	first := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 1)
	return []*models.Player{
		{ID: "ben", Name: "Ben", Grade: "B", EloRating: 1000, CreatedAt: registration, GamesPlayed: 2, Wins: 1, Draws: 1, Points: 3.5, Rank: 1, LastActive: &second},
		{ID: "carl", Name: "Carl", Grade: "A", EloRating: 950, CreatedAt: registration, GamesPlayed: 1, Draws: 1, Points: 1.5, Rank: 2, LastActive: &second},
		{ID: "anna", Name: "Anna", Grade: "A", EloRating: 1100, CreatedAt: registration, GamesPlayed: 1, Losses: 1, Points: 1, Rank: 3, LastActive: &first},
	}
}
