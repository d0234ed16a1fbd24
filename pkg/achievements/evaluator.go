package achievements

import (
	"fmt"
	"log"
	"sort"
	"time"

	"chessclub/pkg/database/models"
	"chessclub/pkg/elo"
)

// Reference selects what "now" means for the trailing window achievements.
type Reference int

const (
	// The date of the game being scanned. Reproducible at any later time.
	ReferenceGameDate Reference = iota
	// The moment of the evaluation.
	ReferenceWallClock
)

// Evaluator walks a player's history against a catalog.
type Evaluator struct {
	Catalog   []Definition
	Reference Reference
	Clock     func() time.Time
	Logf      func(format string, args ...any)
}

// NewEvaluator returns an evaluator over the full catalog using game dates as reference.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Catalog:   Catalog,
		Reference: ReferenceGameDate,
		Clock:     time.Now,
		Logf:      log.Printf,
	}
}

// Evaluate returns every achievement the player holds, oldest first.
// Achievements in earned are kept as they are and their types are not evaluated again.
func (e *Evaluator) Evaluate(playerID string, games []*models.Game, players []*models.Player, earned []models.PlayerAchievement) []models.PlayerAchievement {
	result := make([]models.PlayerAchievement, 0, len(earned))
	result = append(result, earned...)

	valid := make([]*models.Game, 0, len(games))
	for _, game := range games {
		if game.Validate() == nil {
			valid = append(valid, game)
		}
	}
	all := elo.SortChronologically(valid)

	own := make([]*models.Game, 0)
	for _, game := range all {
		if game.Involves(playerID) {
			own = append(own, game)
		}
	}
	if len(own) == 0 {
		sortByEarned(result)
		return result
	}

	player := resolvePlayer(playerID, own[0], players)

	done := make(map[Type]bool, len(earned))
	for _, achievement := range earned {
		done[Type(achievement.Type)] = true
	}

	for i, game := range own {
		in := Input{
			Player:       player,
			Game:         game,
			GamesUpToNow: prefix(all, game.GameDate),
			AllPlayers:   players,
			Now:          e.now(game),
		}

		for _, def := range e.Catalog {
			if done[def.Type] || !e.holds(def, in) {
				continue
			}

			done[def.Type] = true
			result = append(result, models.PlayerAchievement{
				ID:          fmt.Sprintf("%s_%s_%d", playerID, def.Type, i),
				PlayerID:    playerID,
				Type:        string(def.Type),
				Title:       def.Title,
				Description: def.Description,
				GameID:      game.ID,
				EarnedAt:    game.GameDate,
			})
		}
	}

	sortByEarned(result)
	return result
}

// holds evaluates a single predicate, a panic counts as not earned.
func (e *Evaluator) holds(def Definition, in Input) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logf("Achievement %s failed for player %s on game %s: %v", def.Type, in.Player.ID, in.Game.ID, r)
			ok = false
		}
	}()
	return def.Predicate(in)
}

func (e *Evaluator) now(game *models.Game) time.Time {
	if e.Reference == ReferenceWallClock {
		if e.Clock != nil {
			return e.Clock()
		}
		return time.Now()
	}
	return game.GameDate
}

func (e *Evaluator) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

// prefix returns the sorted games dated on or before the given date.
func prefix(sorted []*models.Game, date time.Time) []*models.Game {
	end := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].GameDate.After(date)
	})
	return sorted[:end]
}

// resolvePlayer finds the roster record or builds a stand-in for a player that has games but no registration.
func resolvePlayer(playerID string, first *models.Game, players []*models.Player) *models.Player {
	for _, p := range players {
		if p.ID == playerID {
			return p
		}
	}
	return &models.Player{ID: playerID, Name: first.NameOf(playerID)}
}

func sortByEarned(achievements []models.PlayerAchievement) {
	sort.SliceStable(achievements, func(i, j int) bool {
		return achievements[i].EarnedAt.Before(achievements[j].EarnedAt)
	})
}
