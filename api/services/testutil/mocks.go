package testutil

import (
	"context"
	"testing"
	"time"

	"chessclub/api/filters"
	"chessclub/pkg/database/models"
	"chessclub/pkg/mq"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

const (
	DatabaseError   = "database error occurred"
	DefaultTimerCtx = "*context.timerCtx"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Repositories.
// ============================================================================

// Game repository mock implementation.
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetGames(ctx context.Context, filter *filters.GameFilter) ([]*models.Game, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *MockGameRepository) GetGameById(ctx context.Context, gameId string) (*models.Game, error) {
	args := m.Called(ctx, gameId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) AddGame(ctx context.Context, game *models.Game) (string, error) {
	args := m.Called(ctx, game)
	return args.String(0), args.Error(1)
}

func (m *MockGameRepository) UpdateGame(ctx context.Context, gameId string, updates map[string]any) error {
	args := m.Called(ctx, gameId, updates)
	return args.Error(0)
}

// Player repository mock implementation.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetPlayers(ctx context.Context) ([]*models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetPlayerById(ctx context.Context, playerId string) (*models.Player, error) {
	args := m.Called(ctx, playerId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) AddPlayer(ctx context.Context, player *models.Player) (string, error) {
	args := m.Called(ctx, player)
	return args.String(0), args.Error(1)
}

func (m *MockPlayerRepository) UpdatePlayer(ctx context.Context, playerId string, updates map[string]any) error {
	args := m.Called(ctx, playerId, updates)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateStandings(ctx context.Context, players []*models.Player) error {
	args := m.Called(ctx, players)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetPlayerEloRating(ctx context.Context, playerId string) (int, error) {
	args := m.Called(ctx, playerId)
	return args.Int(0), args.Error(1)
}

func (m *MockPlayerRepository) UpdatePlayerEloRating(ctx context.Context, playerId string, rating int) error {
	args := m.Called(ctx, playerId, rating)
	return args.Error(0)
}

// Achievement repository mock implementation.
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error) {
	args := m.Called(ctx, playerId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerAchievement), args.Error(1)
}

func (m *MockAchievementRepository) SaveAchievements(ctx context.Context, achievements []models.PlayerAchievement) error {
	args := m.Called(ctx, achievements)
	return args.Error(0)
}

// ============================================================================
// Caches.
// ============================================================================

// MemCache mock implementation.
type MockMemCache struct {
	mock.Mock
}

func (m *MockMemCache) Get(key string) any {
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockMemCache) Set(key string, value any, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockMemCache) Delete(key string) {
	m.Called(key)
}

func (m *MockMemCache) Close() {
	m.Called()
}

// Ranking redis client mock implementation.
type MockRankingRedisClient struct {
	mock.Mock
}

func (m *MockRankingRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRankingRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockRankingRedisClient) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// Rating redis client mock implementation.
type MockRatingRedisClient struct {
	mock.Mock
}

func (m *MockRatingRedisClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockRatingRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

// ============================================================================
// Collaborating services.
// ============================================================================

// Rating mirror mock implementation.
type MockRatingMirror struct {
	mock.Mock
}

func (m *MockRatingMirror) MirrorRatings(ctx context.Context, ratings map[string]int) (int, error) {
	args := m.Called(ctx, ratings)
	return args.Int(0), args.Error(1)
}

// Ranking service mock implementation.
type MockRankingService struct {
	mock.Mock
}

func (m *MockRankingService) GetRankings(ctx context.Context, filter *filters.RankingFilter) ([]*models.Player, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockRankingService) InvalidateRankings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rating service mock implementation.
type MockGameRater struct {
	mock.Mock
}

func (m *MockGameRater) RateGame(ctx context.Context, game *models.Game) (*models.RatingChange, error) {
	args := m.Called(ctx, game)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingChange), args.Error(1)
}

// Event publisher mock implementation.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishGameRecorded(ctx context.Context, event mq.GameRecorded) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
