// Package standings folds the game log and the roster into the club ladder.
package standings

import (
	"sort"

	"chessclub/pkg/database/models"
)

const (
	// Every game played is worth a participation point.
	ParticipationPoints = 1.0
	// A win adds one point on top of the participation one.
	WinBonusPoints = 1.0
	// A draw is worth a point and a half to each side.
	DrawPoints = 1.5
)

// Calculate returns a copy of every roster member with the aggregates rebuilt from the games, sorted by rank.
// Games with a participant outside the roster, or malformed games, are left out of the counts.
// The roster passed in is not modified.
func Calculate(games []*models.Game, roster []*models.Player) []*models.Player {
	ranked := make([]*models.Player, len(roster))
	byID := make(map[string]*models.Player, len(roster))

	for i, p := range roster {
		clone := *p
		resetAggregates(&clone)
		ranked[i] = &clone
		byID[clone.ID] = &clone
	}

	for _, game := range games {
		if game.Validate() != nil {
			continue
		}

		player1, ok1 := byID[game.Player1ID]
		player2, ok2 := byID[game.Player2ID]
		if !ok1 || !ok2 {
			continue
		}

		applyGame(player1, player2, game)
	}

	SortRanked(ranked)
	return ranked
}

// SortRanked orders by points then wins, keeping the encounter order on ties, and assigns contiguous ranks.
func SortRanked(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Points != players[j].Points {
			return players[i].Points > players[j].Points
		}
		return players[i].Wins > players[j].Wins
	})

	for i, p := range players {
		p.Rank = i + 1
	}
}

// resetAggregates zeroes the cached counters and seeds the activity with the registration time.
func resetAggregates(p *models.Player) {
	p.GamesPlayed = 0
	p.Wins = 0
	p.Draws = 0
	p.Losses = 0
	p.Points = 0
	p.Rank = 0

	registered := p.CreatedAt
	p.LastActive = &registered
}

// applyGame adds a single game to both participants.
func applyGame(player1, player2 *models.Player, game *models.Game) {
	for _, p := range []*models.Player{player1, player2} {
		p.GamesPlayed++
		touch(p, game)
	}

	switch game.Result {
	case models.ResultPlayer1Wins:
		awardDecisive(player1, player2)
	case models.ResultPlayer2Wins:
		awardDecisive(player2, player1)
	case models.ResultDraw:
		player1.Draws++
		player2.Draws++
		player1.Points += DrawPoints
		player2.Points += DrawPoints
	}
}

func awardDecisive(winner, loser *models.Player) {
	winner.Wins++
	winner.Points += ParticipationPoints + WinBonusPoints
	loser.Losses++
	loser.Points += ParticipationPoints
}

// touch moves the last activity forward to the game date.
func touch(p *models.Player, game *models.Game) {
	if p.LastActive == nil || game.GameDate.After(*p.LastActive) {
		played := game.GameDate
		p.LastActive = &played
	}
}
