package messages

const (
	CouldNotFindId           = "couldn't find the %s Id"
	FailedToCalculateRatings = "failed to calculate ratings"
	FailedToRetrieveRankings = "failed to retrieve rankings"
	FiltersNotNil            = "filters can't be nil"
	InvalidGameResult        = "result must be one of player1, player2 or draw"
	InvalidGameType          = "game type must be one of ladder, tournament, friendly or practice"
	InvalidRating            = "rating must be a positive integer"
	OperationInProgress      = "operation already in progress, please wait"
	PlayerNameRequired       = "player %s needs a name when not registered"
)
