package modules

import (
	"chessclub/api/handlers"
	gameservice "chessclub/api/services/game"
)

func initializeGameHandler(deps *ModuleDependencies, shared *sharedServices) *handlers.GameHandler {
	gameDeps := &gameservice.GameServiceDeps{
		DB:           deps.DB,
		Rater:        shared.ratings,
		Rankings:     shared.rankings,
		Publisher:    deps.Publisher,
		RateOnRecord: deps.Config.Rating.RateOnRecord,
	}

	gameService := gameservice.NewGameService(gameDeps)

	gameHandlerDeps := &handlers.GameHandlerDependencies{
		GameService: gameService,
	}

	return handlers.NewGameHandler(gameHandlerDeps)
}
