package modules

import (
	"chessclub/api/cache"
	"chessclub/api/handlers"
	gameservice "chessclub/api/services/game"
	rankingservice "chessclub/api/services/ranking"
	ratingservice "chessclub/api/services/rating"
	"chessclub/pkg/achievements"
	"chessclub/pkg/config"
	"chessclub/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ModuleDependencies are the shared clients every module is built from.
// Publisher and Mirror are optional and must be left nil when not configured.
type ModuleDependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.RedisClient
	MemCache  cache.MemCache
	Publisher gameservice.EventPublisher
	Mirror    ratingservice.RatingMirror
}

// Module containing the necessary handlers.
type Module struct {
	Router         *gin.Engine
	GameHandler    *handlers.GameHandler
	PlayerHandler  *handlers.PlayerHandler
	RankingHandler *handlers.RankingHandler
	RatingHandler  *handlers.RatingHandler
}

// Services shared between handlers.
type sharedServices struct {
	rankings *rankingservice.RankingService
	ratings  *ratingservice.RatingService
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	rankingService := rankingservice.NewRankingService(&rankingservice.RankingServiceDeps{
		DB:       deps.DB,
		MemCache: deps.MemCache,
		Redis:    deps.Redis,
	})

	ratingService := ratingservice.NewRatingService(&ratingservice.RatingServiceDeps{
		DB:                  deps.DB,
		Redis:               deps.Redis,
		Mirror:              deps.Mirror,
		Rankings:            rankingService,
		ReplayFromPersisted: deps.Config.Rating.ReplayFromPersisted,
	})

	shared := &sharedServices{
		rankings: rankingService,
		ratings:  ratingService,
	}

	return &Module{
		Router:         router,
		GameHandler:    initializeGameHandler(deps, shared),
		PlayerHandler:  initializePlayerHandler(deps, shared),
		RankingHandler: initializeRankingHandler(shared),
		RatingHandler:  initializeRatingHandler(shared),
	}
}

// Reference used for the trailing window achievements.
func achievementReference(cfg *config.Config) achievements.Reference {
	if cfg.Achievement.WallClockWindows {
		return achievements.ReferenceWallClock
	}
	return achievements.ReferenceGameDate
}
