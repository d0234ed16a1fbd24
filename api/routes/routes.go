package routes

import (
	"chessclub/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.GameHandler:
			r.registerGameHandler(handler)
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		case *handlers.RankingHandler:
			r.registerRankingHandler(handler)
		case *handlers.RatingHandler:
			r.registerRatingHandler(handler)
		}
	}
}

// Register the game handler.
func (r *Router) registerGameHandler(handler *handlers.GameHandler) {
	games := r.api.Group("/games")
	{
		games.POST("", handler.RecordGame)
		games.GET("", handler.ListGames)
		games.PATCH("/:gameId", handler.UpdateGame)
		games.POST("/:gameId/verify", handler.VerifyGame)
	}
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.POST("", handler.RegisterPlayer)
		players.GET("/:playerId", handler.GetPlayer)
		players.GET("/:playerId/achievements", handler.GetPlayerAchievements)
	}
}

// Register the ranking handler.
func (r *Router) registerRankingHandler(handler *handlers.RankingHandler) {
	r.api.GET("/rankings", handler.GetRankings)
}

// Register the rating handler, including the rating of a single player.
func (r *Router) registerRatingHandler(handler *handlers.RatingHandler) {
	ratings := r.api.Group("/ratings")
	{
		ratings.POST("/recalculate", handler.RecalculateRatings)
		ratings.GET("/preview", handler.PreviewRating)
	}

	r.api.GET("/players/:playerId/rating", handler.GetPlayerRating)
	r.api.PUT("/players/:playerId/rating", handler.UpdatePlayerRating)
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
