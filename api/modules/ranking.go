package modules

import "chessclub/api/handlers"

func initializeRankingHandler(shared *sharedServices) *handlers.RankingHandler {
	return handlers.NewRankingHandler(&handlers.RankingHandlerDependencies{
		RankingService: shared.rankings,
	})
}

func initializeRatingHandler(shared *sharedServices) *handlers.RatingHandler {
	return handlers.NewRatingHandler(&handlers.RatingHandlerDependencies{
		RatingService: shared.ratings,
	})
}
