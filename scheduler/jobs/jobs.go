package jobs

import (
	"chessclub/api/cache"
	rankingservice "chessclub/api/services/ranking"
	ratingservice "chessclub/api/services/rating"
	"chessclub/pkg/config"
	"chessclub/pkg/redis"

	"gorm.io/gorm"
)

// Dependencies are the clients shared by every job of the scheduler.
// Mirror is optional.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.RedisClient
	MemCache cache.MemCache
	Mirror   ratingservice.RatingMirror
}

func (d *Dependencies) rankingService() *rankingservice.RankingService {
	return rankingservice.NewRankingService(&rankingservice.RankingServiceDeps{
		DB:       d.DB,
		MemCache: d.MemCache,
		Redis:    d.Redis,
	})
}

func (d *Dependencies) ratingService() *ratingservice.RatingService {
	return ratingservice.NewRatingService(&ratingservice.RatingServiceDeps{
		DB:                  d.DB,
		Redis:               d.Redis,
		Mirror:              d.Mirror,
		Rankings:            d.rankingService(),
		ReplayFromPersisted: d.Config.Rating.ReplayFromPersisted,
	})
}
