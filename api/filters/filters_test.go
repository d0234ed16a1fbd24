package filters

import (
	"testing"
	"time"

	"chessclub/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func sampleGames() []*models.Game {
	event := "spring-open"
	return []*models.Game{
		{ID: "g1", Player1ID: "a", Player2ID: "b", Result: models.ResultPlayer1Wins, GameType: models.GameTypeLadder, GameDate: day(1)},
		{ID: "g2", Player1ID: "b", Player2ID: "c", Result: models.ResultDraw, GameType: models.GameTypeTournament, GameDate: day(5), EventID: &event, Verified: true},
		{ID: "g3", Player1ID: "c", Player2ID: "a", Result: models.ResultPlayer2Wins, GameType: models.GameTypeFriendly, GameDate: day(9)},
	}
}

func ids(games []*models.Game) []string {
	result := make([]string, len(games))
	for i, g := range games {
		result[i] = g.ID
	}
	return result
}

func TestNewGameFilter(t *testing.T) {
	tests := []struct {
		name        string
		params      GameListParams
		expectedErr bool
	}{
		{name: "empty", params: GameListParams{}},
		{name: "all fields", params: GameListParams{PlayerID: "a", GameType: "ladder", From: "2024-03-01", To: "2024-03-31", Result: "draw", EventID: "e", Verified: "true"}},
		{name: "bad game type", params: GameListParams{GameType: "blitz"}, expectedErr: true},
		{name: "bad result", params: GameListParams{Result: "white"}, expectedErr: true},
		{name: "bad date", params: GameListParams{From: "03/01/2024"}, expectedErr: true},
		{name: "reversed range", params: GameListParams{From: "2024-03-10", To: "2024-03-01"}, expectedErr: true},
		{name: "bad verified", params: GameListParams{Verified: "maybe"}, expectedErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewGameFilter(tt.params)
			if tt.expectedErr {
				assert.Error(t, err)
				assert.Nil(t, filter)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, filter)
		})
	}
}

func TestGameFilterApply(t *testing.T) {
	tests := []struct {
		name     string
		params   GameListParams
		expected []string
	}{
		{name: "no filter", params: GameListParams{}, expected: []string{"g1", "g2", "g3"}},
		{name: "player", params: GameListParams{PlayerID: "a"}, expected: []string{"g1", "g3"}},
		{name: "game type", params: GameListParams{GameType: "tournament"}, expected: []string{"g2"}},
		{name: "inclusive range", params: GameListParams{From: "2024-03-01", To: "2024-03-05"}, expected: []string{"g1", "g2"}},
		{name: "result", params: GameListParams{Result: "player2"}, expected: []string{"g3"}},
		{name: "event", params: GameListParams{EventID: "spring-open"}, expected: []string{"g2"}},
		{name: "unverified", params: GameListParams{Verified: "false"}, expected: []string{"g1", "g3"}},
		{name: "combined", params: GameListParams{PlayerID: "c", From: "2024-03-06"}, expected: []string{"g3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewGameFilter(tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, ids(filter.Apply(sampleGames())))
		})
	}
}

func TestNilGameFilterMatchesEverything(t *testing.T) {
	var filter *GameFilter
	assert.Len(t, filter.Apply(sampleGames()), 3)
}

func TestRankingFilterApply(t *testing.T) {
	ranked := []*models.Player{
		{ID: "a", Grade: "A", Rank: 1},
		{ID: "b", Grade: "B", Rank: 2},
		{ID: "c", Grade: "A", Rank: 3},
		{ID: "d", Grade: "A", Rank: 4},
	}

	byGrade := NewRankingFilter(RankingParams{Grade: "a"}).Apply(ranked)
	require.Len(t, byGrade, 3)
	assert.Equal(t, 3, byGrade[1].Rank)

	limited := NewRankingFilter(RankingParams{Grade: "A", Limit: 2}).Apply(ranked)
	assert.Equal(t, []*models.Player{ranked[0], ranked[2]}, limited)

	assert.Len(t, NewRankingFilter(RankingParams{}).Apply(ranked), 4)
}
