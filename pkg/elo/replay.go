package elo

import (
	"chessclub/pkg/database/models"
)

// GameChange is the rating change computed for one game of the replay.
type GameChange struct {
	Game    *models.Game
	// Ratings of each side before the game.
	Rating1 int
	Rating2 int
	Change  models.RatingChange
}

// SkippedGame is a game the replay couldn't use.
type SkippedGame struct {
	Game *models.Game
	Err  error
}

// ReplayResult is the outcome of a full replay.
type ReplayResult struct {
	// Final rating of every player seen in the log, roster member or not.
	Ratings map[string]int
	// Changes in the order they were applied.
	Changes []GameChange
	Skipped []SkippedGame
}

// InitialRating returns the starting rating of a player the first time the replay sees it.
type InitialRating func(playerID string) int

// Baseline starts every player at the default rating.
func Baseline(string) int {
	return models.DefaultEloRating
}

// FromRoster starts roster members at their persisted rating and everyone else at the default one.
func FromRoster(roster []*models.Player) InitialRating {
	ratings := make(map[string]int, len(roster))
	for _, p := range roster {
		ratings[p.ID] = p.CurrentRating()
	}

	return func(playerID string) int {
		if rating, ok := ratings[playerID]; ok {
			return rating
		}
		return models.DefaultEloRating
	}
}

// Replay applies every game in chronological order.
// Each delta is applied before the next game so the result is path dependent, as ELO requires.
// The rating map only lives for the duration of the call.
func Replay(games []*models.Game, initial InitialRating) *ReplayResult {
	if initial == nil {
		initial = Baseline
	}

	result := &ReplayResult{
		Ratings: make(map[string]int),
		Changes: make([]GameChange, 0, len(games)),
	}

	current := func(playerID string) int {
		rating, ok := result.Ratings[playerID]
		if !ok {
			rating = initial(playerID)
			result.Ratings[playerID] = rating
		}
		return rating
	}

	for _, game := range SortChronologically(games) {
		if err := game.Validate(); err != nil {
			result.Skipped = append(result.Skipped, SkippedGame{Game: game, Err: err})
			continue
		}

		rating1 := current(game.Player1ID)
		rating2 := current(game.Player2ID)

		change, err := CalculateChange(rating1, rating2, game.Result)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedGame{Game: game, Err: err})
			continue
		}

		result.Ratings[game.Player1ID] = rating1 + change.Player1
		result.Ratings[game.Player2ID] = rating2 + change.Player2

		result.Changes = append(result.Changes, GameChange{
			Game:    game,
			Rating1: rating1,
			Rating2: rating2,
			Change:  change,
		})
	}

	return result
}
