// Package achievements decides which badges a player earned from the game log.
package achievements

import (
	"time"

	"chessclub/pkg/database/models"
)

// Type identifies an achievement kind.
type Type string

const (
	FirstWin        Type = "first_win"
	WinStreak3      Type = "win_streak_3"
	WinStreak5      Type = "win_streak_5"
	WinStreak10     Type = "win_streak_10"
	GamesPlayed10   Type = "games_played_10"
	GamesPlayed25   Type = "games_played_25"
	GamesPlayed50   Type = "games_played_50"
	PerfectWeek     Type = "perfect_week"
	ComebackKing    Type = "comeback_king"
	GiantSlayer     Type = "giant_slayer"
	DrawMaster      Type = "draw_master"
	FirstDraw       Type = "first_draw"
	UndefeatedMonth Type = "undefeated_month"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour

	// Minimum rank distance for a win to count as an upset.
	giantSlayerGap = 3
)

// Input is everything a predicate may look at.
type Input struct {
	Player *models.Player
	Game   *models.Game

	// Every game in the club dated on or before the current one, chronologically sorted.
	GamesUpToNow []*models.Game
	AllPlayers   []*models.Player

	// Reference point for the trailing windows.
	Now time.Time
}

// Predicate reports whether the achievement holds at the current game.
type Predicate func(in Input) bool

// Definition pairs an achievement kind with its static texts and its predicate.
type Definition struct {
	Type        Type
	Title       string
	Description string
	Predicate   Predicate
}

// Catalog is the fixed list of achievements, in evaluation order.
var Catalog = []Definition{
	{FirstWin, "First Victory", "Won your first game", firstWin},
	{WinStreak3, "Hot Streak", "Won 3 games in a row", winStreak(3)},
	{WinStreak5, "On Fire", "Won 5 games in a row", winStreak(5)},
	{WinStreak10, "Unstoppable", "Won 10 games in a row", winStreak(10)},
	{GamesPlayed10, "Regular", "Played 10 games", gamesPlayed(10)},
	{GamesPlayed25, "Dedicated", "Played 25 games", gamesPlayed(25)},
	{GamesPlayed50, "Veteran", "Played 50 games", gamesPlayed(50)},
	{PerfectWeek, "Perfect Week", "Won every game of a week with at least 3 games", perfectWeek},
	{ComebackKing, "Comeback King", "Won right after losing 3 games in a row", comebackKing},
	{GiantSlayer, "Giant Slayer", "Beat a player ranked at least 3 places higher", giantSlayer},
	{DrawMaster, "Draw Master", "Drew 5 games in a row", drawMaster},
	{FirstDraw, "Honours Even", "Drew your first game", firstDraw},
	{UndefeatedMonth, "Undefeated Month", "Played at least 5 games in 30 days without a loss", undefeatedMonth},
}

// Lookup returns the catalog entry for a type.
func Lookup(t Type) (Definition, bool) {
	for _, def := range Catalog {
		if def.Type == t {
			return def, true
		}
	}
	return Definition{}, false
}

// History returns the player's games up to now, oldest first.
func (in Input) History() []*models.Game {
	history := make([]*models.Game, 0)
	for _, game := range in.GamesUpToNow {
		if game.Involves(in.Player.ID) {
			history = append(history, game)
		}
	}
	return history
}

// Earlier returns the player's games played before the current one, oldest first.
// Later games of the same day are part of the history but not of this list.
func (in Input) Earlier() []*models.Game {
	history := in.History()
	for i, game := range history {
		if game.ID == in.Game.ID {
			return history[:i]
		}
	}
	return history
}

// Recent returns at most n of the player's latest games, newest first.
func (in Input) Recent(n int) []*models.Game {
	history := in.History()
	recent := make([]*models.Game, 0, n)
	for i := len(history) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, history[i])
	}
	return recent
}

// Within returns the player's games dated inside the window ending at Now.
func (in Input) Within(window time.Duration) []*models.Game {
	from := in.Now.Add(-window)
	games := make([]*models.Game, 0)
	for _, game := range in.History() {
		if !game.GameDate.Before(from) && !game.GameDate.After(in.Now) {
			games = append(games, game)
		}
	}
	return games
}

func firstWin(in Input) bool {
	for _, game := range in.History() {
		if game.IsWinFor(in.Player.ID) {
			return true
		}
	}
	return false
}

func winStreak(n int) Predicate {
	return func(in Input) bool {
		recent := in.Recent(n)
		return len(recent) == n && allWins(in.Player.ID, recent)
	}
}

func gamesPlayed(n int) Predicate {
	return func(in Input) bool {
		return len(in.History()) >= n
	}
}

func perfectWeek(in Input) bool {
	games := in.Within(week)
	return len(games) >= 3 && allWins(in.Player.ID, games)
}

func comebackKing(in Input) bool {
	if !in.Game.IsWinFor(in.Player.ID) {
		return false
	}

	history := in.History()
	current := -1
	for i, game := range history {
		if game.ID == in.Game.ID {
			current = i
		}
	}
	if current < 3 {
		return false
	}

	for _, game := range history[current-3 : current] {
		if !game.IsLossFor(in.Player.ID) {
			return false
		}
	}
	return true
}

func giantSlayer(in Input) bool {
	if !in.Game.IsWinFor(in.Player.ID) || in.Player.Rank <= 0 {
		return false
	}

	opponentID := in.Game.OpponentOf(in.Player.ID)
	for _, p := range in.AllPlayers {
		if p.ID == opponentID {
			return p.Rank > 0 && p.Rank <= in.Player.Rank-giantSlayerGap
		}
	}
	return false
}

func drawMaster(in Input) bool {
	if !in.Game.IsDraw() {
		return false
	}

	recent := in.Recent(5)
	if len(recent) < 5 {
		return false
	}
	for _, game := range recent {
		if !game.IsDraw() {
			return false
		}
	}
	return true
}

func firstDraw(in Input) bool {
	if !in.Game.IsDraw() {
		return false
	}

	for _, game := range in.Earlier() {
		if game.IsDraw() {
			return false
		}
	}
	return true
}

func undefeatedMonth(in Input) bool {
	games := in.Within(month)
	if len(games) < 5 {
		return false
	}
	for _, game := range games {
		if game.IsLossFor(in.Player.ID) {
			return false
		}
	}
	return true
}

func allWins(playerID string, games []*models.Game) bool {
	for _, game := range games {
		if !game.IsWinFor(playerID) {
			return false
		}
	}
	return true
}
