package rankingservice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chessclub/api/cache"
	"chessclub/api/filters"
	gamerepo "chessclub/api/repositories/game"
	playerrepo "chessclub/api/repositories/player"
	"chessclub/pkg/database/models"
	"chessclub/pkg/standings"

	"gorm.io/gorm"
)

const (
	RankingsKey                 = "rankings"
	RankingsMemoryCacheDuration = 5 * time.Minute
	RankingsRedisCacheDuration  = 30 * time.Minute
)

type RankingRedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RankingService serves the ladder, rebuilt from the game log when no cache layer has it.
type RankingService struct {
	db       *gorm.DB
	memCache cache.MemCache
	redis    RankingRedisClient

	GameRepository   gamerepo.GameRepository
	PlayerRepository playerrepo.PlayerRepository
}

// RankingServiceDeps is the dependency list for the ranking service.
type RankingServiceDeps struct {
	DB       *gorm.DB
	MemCache cache.MemCache
	Redis    RankingRedisClient
}

// NewRankingService creates a ranking service.
func NewRankingService(deps *RankingServiceDeps) *RankingService {
	return &RankingService{
		db:               deps.DB,
		memCache:         deps.MemCache,
		redis:            deps.Redis,
		GameRepository:   gamerepo.NewGameRepository(deps.DB),
		PlayerRepository: playerrepo.NewPlayerRepository(deps.DB),
	}
}

// GetRankings returns the ranked roster narrowed by the filter.
// The returned players are shared with the cache and must not be modified.
func (rs *RankingService) GetRankings(ctx context.Context, filter *filters.RankingFilter) ([]*models.Player, error) {
	if mem := rs.getFromMemCache(); mem != nil {
		return filter.Apply(mem), nil
	}

	if redisData := rs.getFromRedis(ctx); redisData != nil {
		rs.memCache.Set(RankingsKey, redisData, RankingsMemoryCacheDuration)
		return filter.Apply(redisData), nil
	}

	ranked, err := rs.calculateRankings(ctx)
	if err != nil {
		return nil, err
	}

	rs.populateCaches(ctx, ranked)

	return filter.Apply(ranked), nil
}

// InvalidateRankings drops both cache layers.
func (rs *RankingService) InvalidateRankings(ctx context.Context) error {
	rs.memCache.Delete(RankingsKey)

	if err := rs.redis.Delete(ctx, RankingsKey); err != nil {
		return fmt.Errorf("couldn't invalidate the cached rankings: %w", err)
	}
	return nil
}

// PersistRankings recalculates the ladder and writes the aggregates back on the roster.
func (rs *RankingService) PersistRankings(ctx context.Context) (int, error) {
	ranked, err := rs.calculateRankings(ctx)
	if err != nil {
		return 0, err
	}

	if err := rs.PlayerRepository.UpdateStandings(ctx, ranked); err != nil {
		return 0, err
	}

	rs.populateCaches(ctx, ranked)

	return len(ranked), nil
}

// calculateRankings loads the log and the roster and folds them.
func (rs *RankingService) calculateRankings(ctx context.Context) ([]*models.Player, error) {
	games, err := rs.GameRepository.GetGames(ctx, nil)
	if err != nil {
		return nil, err
	}

	roster, err := rs.PlayerRepository.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	return standings.Calculate(games, roster), nil
}

// getFromMemCache retrieves the data from the memory and returns it.
func (rs *RankingService) getFromMemCache() []*models.Player {
	if memCachedData := rs.memCache.Get(RankingsKey); memCachedData != nil {
		return memCachedData.([]*models.Player)
	}
	return nil
}

// getFromRedis retrieves the data from the redis.
func (rs *RankingService) getFromRedis(ctx context.Context) []*models.Player {
	ctx, cancel := context.WithTimeout(ctx, time.Millisecond*200)
	defer cancel()

	redisCached, err := rs.redis.Get(ctx, RankingsKey)
	if err != nil || redisCached == "" {
		return nil
	}

	var ranked []*models.Player
	if err := json.Unmarshal([]byte(redisCached), &ranked); err != nil {
		return nil
	}

	return ranked
}

// populateCaches will set the mem cache and redis cache.
func (rs *RankingService) populateCaches(ctx context.Context, ranked []*models.Player) {
	rs.memCache.Set(RankingsKey, ranked, RankingsMemoryCacheDuration)

	if j, err := json.Marshal(ranked); err == nil {
		rs.redis.Set(ctx, RankingsKey, string(j), RankingsRedisCacheDuration)
	}
}
