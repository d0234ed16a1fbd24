package modules

import (
	"chessclub/api/handlers"
	achievementservice "chessclub/api/services/achievement"
	playerservice "chessclub/api/services/player"
)

func initializePlayerHandler(deps *ModuleDependencies, shared *sharedServices) *handlers.PlayerHandler {
	playerService := playerservice.NewPlayerService(&playerservice.PlayerServiceDeps{
		DB:       deps.DB,
		Rankings: shared.rankings,
	})

	achievementService := achievementservice.NewAchievementService(&achievementservice.AchievementServiceDeps{
		DB:        deps.DB,
		Rankings:  shared.rankings,
		Reference: achievementReference(deps.Config),
	})

	playerHandlerDeps := &handlers.PlayerHandlerDependencies{
		PlayerService:      playerService,
		AchievementService: achievementService,
	}

	return handlers.NewPlayerHandler(playerHandlerDeps)
}
