// Package elo holds the rating engine: the single game ELO formula and the chronological replay of the game log.
package elo

import (
	"fmt"
	"math"
	"sort"

	"chessclub/pkg/database/models"
)

const (
	// KFactor is the maximum rating swing of a single game.
	KFactor = 32
	// Spread is the rating difference that gives 10 to 1 odds.
	Spread = 400
)

// ExpectedScore returns the expected score of a player rated ra against a player rated rb.
func ExpectedScore(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/Spread))
}

// actualScores converts the result into the score of each side.
func actualScores(result models.GameResult) (float64, float64, error) {
	switch result {
	case models.ResultPlayer1Wins:
		return 1, 0, nil
	case models.ResultPlayer2Wins:
		return 0, 1, nil
	case models.ResultDraw:
		return 0.5, 0.5, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", models.ErrUnknownResult, result)
}

// roundHalfUp rounds to the nearest integer, with .5 going towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// CalculateChange returns the rating delta of each side for a single game.
// Pure, used both by the replay and by incremental updates.
func CalculateChange(rating1, rating2 int, result models.GameResult) (models.RatingChange, error) {
	actual1, actual2, err := actualScores(result)
	if err != nil {
		return models.RatingChange{}, err
	}

	expected1 := ExpectedScore(rating1, rating2)
	expected2 := ExpectedScore(rating2, rating1)

	return models.RatingChange{
		Player1: roundHalfUp(KFactor * (actual1 - expected1)),
		Player2: roundHalfUp(KFactor * (actual2 - expected2)),
	}, nil
}

// SortChronologically returns a copy of the games ordered by game date, then recorded time.
// Games with the same date and recorded time keep their insertion order.
func SortChronologically(games []*models.Game) []*models.Game {
	sorted := make([]*models.Game, len(games))
	copy(sorted, games)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.GameDate.Equal(b.GameDate) {
			return a.GameDate.Before(b.GameDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return sorted
}
