package achievements

import (
	"fmt"
	"testing"
	"time"

	"chessclub/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firstDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// history builds games for "me" against "opp", one per day, from outcomes w, l and d.
func history(outcomes string) []*models.Game {
	games := make([]*models.Game, 0, len(outcomes))
	for i, outcome := range outcomes {
		result := models.ResultDraw
		switch outcome {
		case 'w':
			result = models.ResultPlayer1Wins
		case 'l':
			result = models.ResultPlayer2Wins
		}
		date := firstDay.AddDate(0, 0, i)
		games = append(games, &models.Game{
			ID:          fmt.Sprintf("g%02d", i),
			Player1ID:   "me",
			Player1Name: "Me",
			Player2ID:   "opp",
			Player2Name: "Opponent",
			Result:      result,
			GameDate:    date,
			CreatedAt:   date.Add(18 * time.Hour),
		})
	}
	return games
}

func roster() []*models.Player {
	return []*models.Player{
		{ID: "me", Name: "Me", Rank: 2},
		{ID: "opp", Name: "Opponent", Rank: 1},
	}
}

// Index the achievements by type.
func byType(achievements []models.PlayerAchievement) map[Type]models.PlayerAchievement {
	index := make(map[Type]models.PlayerAchievement, len(achievements))
	for _, a := range achievements {
		index[Type(a.Type)] = a
	}
	return index
}

func TestEvaluateWinStreak(t *testing.T) {
	games := history("llwwwwwlwwww")

	got := byType(NewEvaluator().Evaluate("me", games, roster(), nil))

	require.Contains(t, got, WinStreak3)
	assert.Equal(t, "g04", got[WinStreak3].GameID)
	assert.Equal(t, games[4].GameDate, got[WinStreak3].EarnedAt)
	assert.Equal(t, "me_win_streak_3_4", got[WinStreak3].ID)

	require.Contains(t, got, WinStreak5)
	assert.Equal(t, "g06", got[WinStreak5].GameID)
	assert.NotContains(t, got, WinStreak10)

	require.Contains(t, got, FirstWin)
	assert.Equal(t, "g02", got[FirstWin].GameID)
}

func TestEvaluateAwardsEachTypeOnce(t *testing.T) {
	got := NewEvaluator().Evaluate("me", history("wwwlwwwwlwww"), roster(), nil)

	seen := make(map[string]int)
	for _, a := range got {
		seen[a.Type]++
	}
	for typ, count := range seen {
		assert.Equal(t, 1, count, typ)
	}
}

func TestEvaluateSortedByEarnedAt(t *testing.T) {
	got := NewEvaluator().Evaluate("me", history("dlllwwwddddd"), roster(), nil)

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].EarnedAt.Before(got[i-1].EarnedAt))
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	games := history("wdwlllwwwdddddw")
	evaluator := NewEvaluator()

	first := evaluator.Evaluate("me", games, roster(), nil)
	second := evaluator.Evaluate("me", games, roster(), nil)

	assert.Equal(t, first, second)
}

func TestEvaluateKeepsEarnedAchievements(t *testing.T) {
	earned := []models.PlayerAchievement{{
		ID:       "stored",
		PlayerID: "me",
		Type:     string(FirstWin),
		Title:    "First Victory",
		GameID:   "older-game",
		EarnedAt: firstDay.AddDate(0, 0, -30),
	}}

	got := NewEvaluator().Evaluate("me", history("lww"), roster(), earned)

	wins := 0
	for _, a := range got {
		if a.Type == string(FirstWin) {
			wins++
			assert.Equal(t, earned[0], a)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, earned[0], got[0])
}

func TestEvaluateWithoutGames(t *testing.T) {
	earned := []models.PlayerAchievement{{ID: "kept", Type: string(FirstDraw)}}

	assert.Empty(t, NewEvaluator().Evaluate("me", nil, roster(), nil))
	assert.Equal(t, earned, NewEvaluator().Evaluate("nobody", history("www"), roster(), earned))
}

func TestEvaluateGamesPlayed(t *testing.T) {
	got := byType(NewEvaluator().Evaluate("me", history("wlwlwlwlwlwl"), roster(), nil))

	require.Contains(t, got, GamesPlayed10)
	assert.Equal(t, "g09", got[GamesPlayed10].GameID)
	assert.NotContains(t, got, GamesPlayed25)
}

func TestEvaluateComebackKing(t *testing.T) {
	tests := []struct {
		name     string
		outcomes string
		gameID   string
	}{
		{name: "three losses then a win", outcomes: "lllw", gameID: "g03"},
		{name: "interrupted losing run", outcomes: "lldlw"},
		{name: "not enough history", outcomes: "llw"},
		{name: "later comeback", outcomes: "wlllldlllw", gameID: "g09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := byType(NewEvaluator().Evaluate("me", history(tt.outcomes), roster(), nil))
			if tt.gameID == "" {
				assert.NotContains(t, got, ComebackKing)
				return
			}
			require.Contains(t, got, ComebackKing)
			assert.Equal(t, tt.gameID, got[ComebackKing].GameID)
		})
	}
}

func TestEvaluateDraws(t *testing.T) {
	got := byType(NewEvaluator().Evaluate("me", history("wddwdddddd"), roster(), nil))

	require.Contains(t, got, FirstDraw)
	assert.Equal(t, "g01", got[FirstDraw].GameID)

	require.Contains(t, got, DrawMaster)
	assert.Equal(t, "g08", got[DrawMaster].GameID)
}

func TestEvaluateFirstDrawSameDay(t *testing.T) {
	morning := &models.Game{
		ID: "morning", Player1ID: "me", Player1Name: "Me", Player2ID: "opp", Player2Name: "Opponent",
		Result: models.ResultDraw, GameDate: firstDay, CreatedAt: firstDay.Add(10 * time.Hour),
	}
	afternoon := &models.Game{
		ID: "afternoon", Player1ID: "opp", Player1Name: "Opponent", Player2ID: "me", Player2Name: "Me",
		Result: models.ResultDraw, GameDate: firstDay, CreatedAt: firstDay.Add(11 * time.Hour),
	}

	got := byType(NewEvaluator().Evaluate("me", []*models.Game{afternoon, morning}, roster(), nil))

	require.Contains(t, got, FirstDraw)
	assert.Equal(t, "morning", got[FirstDraw].GameID)
	assert.Equal(t, "me_first_draw_0", got[FirstDraw].ID)
}

func TestEvaluateGiantSlayer(t *testing.T) {
	tests := []struct {
		name     string
		myRank   int
		oppRank  int
		expected bool
	}{
		{name: "three places higher", myRank: 5, oppRank: 2, expected: true},
		{name: "far higher", myRank: 9, oppRank: 1, expected: true},
		{name: "two places higher", myRank: 5, oppRank: 3},
		{name: "lower ranked opponent", myRank: 2, oppRank: 8},
		{name: "unranked player", myRank: 0, oppRank: 1},
		{name: "unranked opponent", myRank: 5, oppRank: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := []*models.Player{
				{ID: "me", Rank: tt.myRank},
				{ID: "opp", Rank: tt.oppRank},
			}

			got := byType(NewEvaluator().Evaluate("me", history("lw"), players, nil))

			if tt.expected {
				require.Contains(t, got, GiantSlayer)
				assert.Equal(t, "g01", got[GiantSlayer].GameID)
			} else {
				assert.NotContains(t, got, GiantSlayer)
			}
		})
	}
}

func TestEvaluateUndefeatedMonth(t *testing.T) {
	got := byType(NewEvaluator().Evaluate("me", history("lwdwdw"), roster(), nil))
	assert.NotContains(t, got, UndefeatedMonth)

	got = byType(NewEvaluator().Evaluate("me", history("wdwdw"), roster(), nil))
	require.Contains(t, got, UndefeatedMonth)
	assert.Equal(t, "g04", got[UndefeatedMonth].GameID)
}

// Trailing windows follow the game being scanned by default, the evaluation time when asked to.
func TestEvaluateTimeReference(t *testing.T) {
	games := history("www")

	byGameDate := byType(NewEvaluator().Evaluate("me", games, roster(), nil))
	require.Contains(t, byGameDate, PerfectWeek)
	assert.Equal(t, "g02", byGameDate[PerfectWeek].GameID)

	wallClock := NewEvaluator()
	wallClock.Reference = ReferenceWallClock
	wallClock.Clock = func() time.Time { return firstDay.AddDate(2, 0, 0) }
	assert.NotContains(t, byType(wallClock.Evaluate("me", games, roster(), nil)), PerfectWeek)

	wallClock.Clock = func() time.Time { return firstDay.AddDate(0, 0, 4) }
	got := byType(wallClock.Evaluate("me", games, roster(), nil))
	require.Contains(t, got, PerfectWeek)
	assert.Equal(t, "g02", got[PerfectWeek].GameID)
}

func TestEvaluatePerfectWeekNeedsOnlyWins(t *testing.T) {
	got := byType(NewEvaluator().Evaluate("me", history("wwlwwwwwwww"), roster(), nil))

	require.Contains(t, got, PerfectWeek)
	assert.Equal(t, "g10", got[PerfectWeek].GameID)
}

// A player with games but no roster entry gets a stand-in record and never a rank based badge.
func TestEvaluateUnregisteredPlayer(t *testing.T) {
	games := history("lw")
	for _, game := range games {
		game.Player1ID = "ghost"
		game.Player1Name = "Ghost"
	}
	players := []*models.Player{{ID: "opp", Rank: 1}}

	var seen *models.Player
	evaluator := NewEvaluator()
	evaluator.Catalog = append([]Definition{{
		Type: "probe",
		Predicate: func(in Input) bool {
			seen = in.Player
			return false
		},
	}}, Catalog...)

	got := byType(evaluator.Evaluate("ghost", games, players, nil))

	require.NotNil(t, seen)
	assert.Equal(t, "Ghost", seen.Name)
	assert.Equal(t, 0, seen.Rank)
	assert.Equal(t, 0, seen.GamesPlayed)
	assert.Contains(t, got, FirstWin)
	assert.NotContains(t, got, GiantSlayer)
	assert.Len(t, players, 1)
}

func TestEvaluateRecoversFromPanics(t *testing.T) {
	var logged []string
	evaluator := NewEvaluator()
	evaluator.Logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}
	evaluator.Catalog = []Definition{
		{Type: "broken", Predicate: func(Input) bool { panic("boom") }},
		{Type: FirstWin, Title: "First Victory", Predicate: firstWin},
	}

	got := evaluator.Evaluate("me", history("lw"), roster(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, string(FirstWin), got[0].Type)
	assert.Len(t, logged, 2)
	assert.Contains(t, logged[0], "boom")
}

// The prefix holds every club game up to the current date, not only the player's.
func TestEvaluatePrefixIncludesOtherGames(t *testing.T) {
	games := history("w")
	games = append(games, &models.Game{
		ID:        "other",
		Player1ID: "x",
		Player2ID: "y",
		Result:    models.ResultDraw,
		GameDate:  firstDay.AddDate(0, 0, -1),
	}, &models.Game{
		ID:        "later",
		Player1ID: "x",
		Player2ID: "y",
		Result:    models.ResultDraw,
		GameDate:  firstDay.AddDate(0, 0, 3),
	})

	var prefixIDs []string
	evaluator := NewEvaluator()
	evaluator.Catalog = []Definition{{
		Type: "probe",
		Predicate: func(in Input) bool {
			for _, game := range in.GamesUpToNow {
				prefixIDs = append(prefixIDs, game.ID)
			}
			return false
		},
	}}

	evaluator.Evaluate("me", games, roster(), nil)

	assert.Equal(t, []string{"other", "g00"}, prefixIDs)
}

func TestLookup(t *testing.T) {
	def, ok := Lookup(WinStreak5)
	require.True(t, ok)
	assert.Equal(t, "On Fire", def.Title)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}
