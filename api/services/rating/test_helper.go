package ratingservice

import (
	"time"

	"chessclub/api/services/testutil"
	"chessclub/pkg/database/models"
	"chessclub/pkg/logger"

	"gorm.io/gorm"
)

var baseDate = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)

// Helper to initialize the mocks.
func setupTestService() (
	*RatingService,
	*testutil.MockGameRepository,
	*testutil.MockPlayerRepository,
	*testutil.MockRatingRedisClient,
	*testutil.MockRatingMirror,
	*testutil.MockRankingService,
) {
	mockGameRepo := new(testutil.MockGameRepository)
	mockPlayerRepo := new(testutil.MockPlayerRepository)
	mockRedis := new(testutil.MockRatingRedisClient)
	mockMirror := new(testutil.MockRatingMirror)
	mockRankings := new(testutil.MockRankingService)

	service := &RatingService{
		db:               new(gorm.DB),
		redis:            mockRedis,
		mirror:           mockMirror,
		rankings:         mockRankings,
		logger:           logger.Std{},
		GameRepository:   mockGameRepo,
		PlayerRepository: mockPlayerRepo,
	}

	return service, mockGameRepo, mockPlayerRepo, mockRedis, mockMirror, mockRankings
}

func newGame(id, p1, p2 string, result models.GameResult, day int) *models.Game {
	date := baseDate.AddDate(0, 0, day)
	return &models.Game{
		ID:        id,
		Player1ID: p1,
		Player2ID: p2,
		Result:    result,
		GameDate:  date,
		CreatedAt: date.Add(18 * time.Hour),
	}
}

func changeColumns(player1, player2 int) map[string]any {
	return map[string]any{
		"player1_rating_change": player1,
		"player2_rating_change": player2,
	}
}
