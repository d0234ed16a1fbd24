package achievementservice

import (
	"context"
	"log"

	"chessclub/api/filters"
	achievementrepo "chessclub/api/repositories/achievement"
	gamerepo "chessclub/api/repositories/game"
	"chessclub/pkg/achievements"
	"chessclub/pkg/database/models"

	"gorm.io/gorm"
)

// RankingProvider gives the current ladder, the ranks feed the rank based achievements.
type RankingProvider interface {
	GetRankings(ctx context.Context, filter *filters.RankingFilter) ([]*models.Player, error)
}

// AchievementService evaluates and stores the achievements of a player.
type AchievementService struct {
	db        *gorm.DB
	rankings  RankingProvider
	evaluator *achievements.Evaluator

	GameRepository        gamerepo.GameRepository
	AchievementRepository achievementrepo.AchievementRepository
}

// AchievementServiceDeps is the dependency list for the achievement service.
type AchievementServiceDeps struct {
	DB        *gorm.DB
	Rankings  RankingProvider
	Reference achievements.Reference
}

// NewAchievementService creates an achievement service.
func NewAchievementService(deps *AchievementServiceDeps) *AchievementService {
	evaluator := achievements.NewEvaluator()
	evaluator.Reference = deps.Reference

	return &AchievementService{
		db:                    deps.DB,
		rankings:              deps.Rankings,
		evaluator:             evaluator,
		GameRepository:        gamerepo.NewGameRepository(deps.DB),
		AchievementRepository: achievementrepo.NewAchievementRepository(deps.DB),
	}
}

// GetPlayerAchievements returns every achievement of the player, oldest first.
// Newly earned ones are stored so they are never lost to a later evaluation.
func (as *AchievementService) GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error) {
	games, err := as.GameRepository.GetGames(ctx, nil)
	if err != nil {
		return nil, err
	}

	players, err := as.rankings.GetRankings(ctx, nil)
	if err != nil {
		return nil, err
	}

	earned, err := as.AchievementRepository.GetPlayerAchievements(ctx, playerId)
	if err != nil {
		return nil, err
	}

	all := as.evaluator.Evaluate(playerId, games, players, earned)

	if fresh := newlyEarned(all, earned); len(fresh) > 0 {
		if err := as.AchievementRepository.SaveAchievements(ctx, fresh); err != nil {
			log.Printf("Failed to store %d achievements of %s: %v", len(fresh), playerId, err)
		}
	}

	return all, nil
}

func newlyEarned(all, earned []models.PlayerAchievement) []models.PlayerAchievement {
	stored := make(map[string]bool, len(earned))
	for _, a := range earned {
		stored[a.Type] = true
	}

	fresh := make([]models.PlayerAchievement, 0)
	for _, a := range all {
		if !stored[a.Type] {
			fresh = append(fresh, a)
		}
	}
	return fresh
}
