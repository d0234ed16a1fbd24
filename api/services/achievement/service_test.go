package achievementservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"chessclub/api/filters"
	"chessclub/api/services/testutil"
	"chessclub/pkg/achievements"
	"chessclub/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	noGameFilter    = (*filters.GameFilter)(nil)
	noRankingFilter = (*filters.RankingFilter)(nil)
	firstDay        = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
)

// Helper to initialize the mocks.
func setupTestService() (*AchievementService, *testutil.MockGameRepository, *testutil.MockAchievementRepository, *testutil.MockRankingService) {
	mockGameRepo := new(testutil.MockGameRepository)
	mockAchievementRepo := new(testutil.MockAchievementRepository)
	mockRankings := new(testutil.MockRankingService)

	service := &AchievementService{
		db:                    new(gorm.DB),
		rankings:              mockRankings,
		evaluator:             achievements.NewEvaluator(),
		GameRepository:        mockGameRepo,
		AchievementRepository: mockAchievementRepo,
	}

	return service, mockGameRepo, mockAchievementRepo, mockRankings
}

// Anna wins twice against Ben, who is ranked far above her.
func createGames() []*models.Game {
	return []*models.Game{
		{ID: "g1", Player1ID: "anna", Player1Name: "Anna", Player2ID: "ben", Player2Name: "Ben", Result: models.ResultPlayer1Wins, GameDate: firstDay},
		{ID: "g2", Player1ID: "ben", Player1Name: "Ben", Player2ID: "anna", Player2Name: "Anna", Result: models.ResultPlayer2Wins, GameDate: firstDay.AddDate(0, 0, 1)},
	}
}

func createRankings() []*models.Player {
	return []*models.Player{
		{ID: "ben", Rank: 1},
		{ID: "x", Rank: 2},
		{ID: "y", Rank: 3},
		{ID: "anna", Rank: 4},
	}
}

func TestNewAchievementService(t *testing.T) {
	service := NewAchievementService(&AchievementServiceDeps{
		DB:        new(gorm.DB),
		Rankings:  new(testutil.MockRankingService),
		Reference: achievements.ReferenceWallClock,
	})

	assert.NotNil(t, service.GameRepository)
	assert.NotNil(t, service.AchievementRepository)
	assert.Equal(t, achievements.ReferenceWallClock, service.evaluator.Reference)
}

func TestGetPlayerAchievements(t *testing.T) {
	service, mockGameRepo, mockAchievementRepo, mockRankings := setupTestService()

	stored := models.PlayerAchievement{
		ID:       "anna_first_win_0",
		PlayerID: "anna",
		Type:     string(achievements.FirstWin),
		Title:    "First Victory",
		GameID:   "g1",
		EarnedAt: firstDay,
	}

	mockGameRepo.On("GetGames", mock.Anything, noGameFilter).Return(createGames(), nil)
	mockRankings.On("GetRankings", mock.Anything, noRankingFilter).Return(createRankings(), nil)
	mockAchievementRepo.On("GetPlayerAchievements", mock.Anything, "anna").Return([]models.PlayerAchievement{stored}, nil)
	mockAchievementRepo.On("SaveAchievements", mock.Anything, mock.MatchedBy(func(fresh []models.PlayerAchievement) bool {
		return len(fresh) == 1 && fresh[0].Type == string(achievements.GiantSlayer) && fresh[0].GameID == "g1"
	})).Return(nil)

	result, err := service.GetPlayerAchievements(context.Background(), "anna")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, stored, result[0])
	assert.Equal(t, string(achievements.GiantSlayer), result[1].Type)
	testutil.VerifyAllMocks(t, mockGameRepo, mockAchievementRepo, mockRankings)
}

func TestGetPlayerAchievementsNothingNew(t *testing.T) {
	service, mockGameRepo, mockAchievementRepo, mockRankings := setupTestService()

	mockGameRepo.On("GetGames", mock.Anything, noGameFilter).Return(createGames(), nil)
	mockRankings.On("GetRankings", mock.Anything, noRankingFilter).Return(createRankings(), nil)
	mockAchievementRepo.On("GetPlayerAchievements", mock.Anything, "ben").Return([]models.PlayerAchievement{}, nil)

	result, err := service.GetPlayerAchievements(context.Background(), "ben")

	require.NoError(t, err)
	assert.Empty(t, result)
	mockAchievementRepo.AssertNotCalled(t, "SaveAchievements", mock.Anything, mock.Anything)
}

func TestGetPlayerAchievementsSaveFailure(t *testing.T) {
	service, mockGameRepo, mockAchievementRepo, mockRankings := setupTestService()

	mockGameRepo.On("GetGames", mock.Anything, noGameFilter).Return(createGames(), nil)
	mockRankings.On("GetRankings", mock.Anything, noRankingFilter).Return(createRankings(), nil)
	mockAchievementRepo.On("GetPlayerAchievements", mock.Anything, "anna").Return([]models.PlayerAchievement{}, nil)
	mockAchievementRepo.On("SaveAchievements", mock.Anything, mock.Anything).Return(errors.New(testutil.DatabaseError))

	result, err := service.GetPlayerAchievements(context.Background(), "anna")

	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestGetPlayerAchievementsLoadFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testutil.MockGameRepository, *testutil.MockAchievementRepository, *testutil.MockRankingService)
	}{
		{
			name: "games",
			setup: func(g *testutil.MockGameRepository, _ *testutil.MockAchievementRepository, _ *testutil.MockRankingService) {
				g.On("GetGames", mock.Anything, noGameFilter).Return(nil, errors.New(testutil.DatabaseError))
			},
		},
		{
			name: "rankings",
			setup: func(g *testutil.MockGameRepository, _ *testutil.MockAchievementRepository, r *testutil.MockRankingService) {
				g.On("GetGames", mock.Anything, noGameFilter).Return(createGames(), nil)
				r.On("GetRankings", mock.Anything, noRankingFilter).Return(nil, errors.New(testutil.DatabaseError))
			},
		},
		{
			name: "stored",
			setup: func(g *testutil.MockGameRepository, a *testutil.MockAchievementRepository, r *testutil.MockRankingService) {
				g.On("GetGames", mock.Anything, noGameFilter).Return(createGames(), nil)
				r.On("GetRankings", mock.Anything, noRankingFilter).Return(createRankings(), nil)
				a.On("GetPlayerAchievements", mock.Anything, "anna").Return(nil, errors.New(testutil.DatabaseError))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockGameRepo, mockAchievementRepo, mockRankings := setupTestService()
			tt.setup(mockGameRepo, mockAchievementRepo, mockRankings)

			result, err := service.GetPlayerAchievements(context.Background(), "anna")

			assert.EqualError(t, err, testutil.DatabaseError)
			assert.Nil(t, result)
			testutil.VerifyAllMocks(t, mockGameRepo, mockAchievementRepo, mockRankings)
		})
	}
}
