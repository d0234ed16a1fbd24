package jobs

import (
	"context"
	"fmt"
	"log"

	achievementservice "chessclub/api/services/achievement"
	"chessclub/pkg/achievements"
	"chessclub/pkg/database/models"
	"chessclub/pkg/mq"
)

type rankingsInvalidator interface {
	InvalidateRankings(ctx context.Context) error
}

type achievementRefresher interface {
	GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error)
}

// GameEventHandler builds the consumer handler of the scheduler.
func GameEventHandler(deps *Dependencies) mq.Handler {
	rankings := deps.rankingService()
	reference := achievements.ReferenceGameDate
	if deps.Config.Achievement.WallClockWindows {
		reference = achievements.ReferenceWallClock
	}

	refresher := achievementservice.NewAchievementService(&achievementservice.AchievementServiceDeps{
		DB:        deps.DB,
		Rankings:  rankings,
		Reference: reference,
	})

	return handleGameRecorded(rankings, refresher)
}

// handleGameRecorded drops the cached ladder and stores what both players earned with the new game.
func handleGameRecorded(rankings rankingsInvalidator, refresher achievementRefresher) mq.Handler {
	return func(ctx context.Context, event mq.GameRecorded) error {
		if err := rankings.InvalidateRankings(ctx); err != nil {
			return fmt.Errorf("couldn't invalidate the rankings for game %s: %w", event.GameID, err)
		}

		for _, playerId := range []string{event.Player1ID, event.Player2ID} {
			earned, err := refresher.GetPlayerAchievements(ctx, playerId)
			if err != nil {
				return fmt.Errorf("couldn't refresh the achievements of %s: %w", playerId, err)
			}
			log.Printf("Player %s holds %d achievements after game %s", playerId, len(earned), event.GameID)
		}

		return nil
	}
}
