package ratingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chessclub/api/dto"
	gamerepo "chessclub/api/repositories/game"
	playerrepo "chessclub/api/repositories/player"
	"chessclub/pkg/database/models"
	"chessclub/pkg/elo"
	"chessclub/pkg/logger"
	"chessclub/pkg/messages"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	RecalculationLockKey      = "ratings:recalculation"
	RecalculationLockDuration = 10 * time.Minute
)

type RatingRedisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RatingMirror copies the final ratings to an external store.
type RatingMirror interface {
	MirrorRatings(ctx context.Context, ratings map[string]int) (int, error)
}

// RankingsInvalidator drops the cached ladder after the ratings change.
type RankingsInvalidator interface {
	InvalidateRankings(ctx context.Context) error
}

// RatingService owns the ELO ratings of the roster.
type RatingService struct {
	db                  *gorm.DB
	redis               RatingRedisClient
	mirror              RatingMirror
	rankings            RankingsInvalidator
	logger              logger.Logger
	replayFromPersisted bool

	GameRepository   gamerepo.GameRepository
	PlayerRepository playerrepo.PlayerRepository
}

// RatingServiceDeps is the dependency list for the rating service.
// Mirror, Rankings and Logger are optional.
type RatingServiceDeps struct {
	DB                  *gorm.DB
	Redis               RatingRedisClient
	Mirror              RatingMirror
	Rankings            RankingsInvalidator
	Logger              logger.Logger
	ReplayFromPersisted bool
}

// NewRatingService creates a rating service.
func NewRatingService(deps *RatingServiceDeps) *RatingService {
	return &RatingService{
		db:                  deps.DB,
		redis:               deps.Redis,
		mirror:              deps.Mirror,
		rankings:            deps.Rankings,
		logger:              logger.OrStd(deps.Logger),
		replayFromPersisted: deps.ReplayFromPersisted,
		GameRepository:      gamerepo.NewGameRepository(deps.DB),
		PlayerRepository:    playerrepo.NewPlayerRepository(deps.DB),
	}
}

// WithLogger returns a copy of the service writing to another logger.
func (rs *RatingService) WithLogger(l logger.Logger) *RatingService {
	clone := *rs
	clone.logger = logger.OrStd(l)
	return &clone
}

// CalculateEloForAllGames replays the whole log and writes the rating changes and the final ratings back.
// Only one recalculation runs at a time across every process sharing the Redis instance.
func (rs *RatingService) CalculateEloForAllGames(ctx context.Context) (*dto.EloRecalculation, error) {
	acquired, err := rs.redis.SetNX(ctx, RecalculationLockKey, "processing", RecalculationLockDuration).Result()
	if err != nil {
		return nil, fmt.Errorf("couldn't acquire the recalculation lock: %w", err)
	}
	if !acquired {
		return nil, errors.New(messages.OperationInProgress)
	}
	// Once locked the batch runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	defer rs.redis.Del(ctx, RecalculationLockKey)

	games, err := rs.GameRepository.GetGames(ctx, nil)
	if err != nil {
		return nil, err
	}

	roster, err := rs.PlayerRepository.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	initial := elo.Baseline
	if rs.replayFromPersisted {
		initial = elo.FromRoster(roster)
	}

	replay := elo.Replay(games, initial)
	summary := &dto.EloRecalculation{}

	for _, skipped := range replay.Skipped {
		rs.logger.Errorf("Skipping game %s: %v", skipped.Game.ID, skipped.Err)
		summary.Errors++
	}

	for _, change := range replay.Changes {
		err := rs.GameRepository.UpdateGame(ctx, change.Game.ID, ratingChangeColumns(change.Change))
		if err != nil {
			rs.logger.Errorf("Failed to store the rating change of game %s: %v", change.Game.ID, err)
			summary.Errors++
			continue
		}
		summary.Processed++
	}

	// Players outside the roster only exist in memory.
	final := make(map[string]int, len(roster))
	for _, p := range roster {
		rating, ok := replay.Ratings[p.ID]
		if !ok {
			continue
		}
		final[p.ID] = rating

		if err := rs.PlayerRepository.UpdatePlayerEloRating(ctx, p.ID, rating); err != nil {
			rs.logger.Errorf("Failed to store the rating of player %s: %v", p.ID, err)
		}
	}

	if rs.mirror != nil && len(final) > 0 {
		if failed, err := rs.mirror.MirrorRatings(ctx, final); err != nil || failed > 0 {
			rs.logger.Errorf("Rating mirror failed for %d players: %v", failed, err)
		}
	}

	rs.invalidateRankings(ctx)

	rs.logger.Infof("Rating recalculation finished: %d processed, %d errors", summary.Processed, summary.Errors)
	return summary, nil
}

// CalculateEloChange previews a single game between two ratings.
func (rs *RatingService) CalculateEloChange(rating1, rating2 int, result models.GameResult) (models.RatingChange, error) {
	return elo.CalculateChange(rating1, rating2, result)
}

// RateGame applies a single new game on top of the stored ratings.
// Players outside the roster are not written.
func (rs *RatingService) RateGame(ctx context.Context, game *models.Game) (*models.RatingChange, error) {
	if err := game.Validate(); err != nil {
		return nil, err
	}

	rating1, err := rs.PlayerRepository.GetPlayerEloRating(ctx, game.Player1ID)
	if err != nil {
		return nil, err
	}
	rating2, err := rs.PlayerRepository.GetPlayerEloRating(ctx, game.Player2ID)
	if err != nil {
		return nil, err
	}

	change, err := elo.CalculateChange(rating1, rating2, game.Result)
	if err != nil {
		return nil, err
	}

	if err := rs.GameRepository.UpdateGame(ctx, game.ID, ratingChangeColumns(change)); err != nil {
		return nil, err
	}

	updates := map[string]int{
		game.Player1ID: rating1 + change.Player1,
		game.Player2ID: rating2 + change.Player2,
	}
	for id, rating := range updates {
		if err := rs.PlayerRepository.UpdatePlayerEloRating(ctx, id, rating); err != nil {
			rs.logger.Infof("Rating of %s not stored: %v", id, err)
		}
	}

	return &change, nil
}

// GetPlayerEloRating returns the stored rating, the default one for unknown players.
func (rs *RatingService) GetPlayerEloRating(ctx context.Context, playerId string) (int, error) {
	return rs.PlayerRepository.GetPlayerEloRating(ctx, playerId)
}

// UpdatePlayerEloRating overrides the rating of a roster member.
func (rs *RatingService) UpdatePlayerEloRating(ctx context.Context, playerId string, rating int) error {
	if rating <= 0 {
		return errors.New(messages.InvalidRating)
	}

	if err := rs.PlayerRepository.UpdatePlayerEloRating(ctx, playerId, rating); err != nil {
		return err
	}

	rs.invalidateRankings(ctx)
	return nil
}

func (rs *RatingService) invalidateRankings(ctx context.Context) {
	if rs.rankings == nil {
		return
	}
	if err := rs.rankings.InvalidateRankings(ctx); err != nil {
		rs.logger.Errorf("%v", err)
	}
}

func ratingChangeColumns(change models.RatingChange) map[string]any {
	return map[string]any{
		"player1_rating_change": change.Player1,
		"player2_rating_change": change.Player2,
	}
}
