package gameservice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chessclub/api/dto"
	"chessclub/api/filters"
	gamerepo "chessclub/api/repositories/game"
	playerrepo "chessclub/api/repositories/player"
	"chessclub/pkg/database/models"
	"chessclub/pkg/elo"
	"chessclub/pkg/messages"
	"chessclub/pkg/mq"

	"gorm.io/gorm"
)

// ErrInvalidGame wraps every rejection of a game submission.
var ErrInvalidGame = errors.New("invalid game")

// GameRater applies the rating change of a new game.
type GameRater interface {
	RateGame(ctx context.Context, game *models.Game) (*models.RatingChange, error)
}

// RankingsInvalidator drops the cached ladder.
type RankingsInvalidator interface {
	InvalidateRankings(ctx context.Context) error
}

// EventPublisher announces recorded games.
type EventPublisher interface {
	PublishGameRecorded(ctx context.Context, event mq.GameRecorded) error
}

// GameService records and annotates games.
type GameService struct {
	db           *gorm.DB
	rater        GameRater
	rankings     RankingsInvalidator
	publisher    EventPublisher
	rateOnRecord bool

	GameRepository   gamerepo.GameRepository
	PlayerRepository playerrepo.PlayerRepository
}

// GameServiceDeps is the dependency list for the game service. Publisher is optional.
type GameServiceDeps struct {
	DB           *gorm.DB
	Rater        GameRater
	Rankings     RankingsInvalidator
	Publisher    EventPublisher
	RateOnRecord bool
}

// NewGameService creates a game service.
func NewGameService(deps *GameServiceDeps) *GameService {
	return &GameService{
		db:               deps.DB,
		rater:            deps.Rater,
		rankings:         deps.Rankings,
		publisher:        deps.Publisher,
		rateOnRecord:     deps.RateOnRecord,
		GameRepository:   gamerepo.NewGameRepository(deps.DB),
		PlayerRepository: playerrepo.NewPlayerRepository(deps.DB),
	}
}

// RecordGame stores a game with the display names of the moment and rates it.
// A failed rating keeps the game, the next full recalculation covers it.
func (gs *GameService) RecordGame(ctx context.Context, req *dto.RecordGameRequest) (*models.Game, *models.RatingChange, error) {
	gameDate, err := time.Parse(filters.DateLayout, req.GameDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid game date %q", ErrInvalidGame, req.GameDate)
	}

	gameType := models.GameTypeLadder
	if req.GameType != "" {
		gameType = models.GameType(req.GameType)
	}
	if !gameType.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidGame, messages.InvalidGameType)
	}

	game := &models.Game{
		Player1ID: strings.TrimSpace(req.Player1ID),
		Player2ID: strings.TrimSpace(req.Player2ID),
		Result:    models.GameResult(req.Result),
		GameDate:  gameDate,
		GameType:  gameType,
		Notes:     req.Notes,
		Opening:   req.Opening,
		Endgame:   req.Endgame,
		EventID:   req.EventID,
	}
	if !game.Result.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidGame, messages.InvalidGameResult)
	}
	if err := game.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}

	if err := gs.resolveNames(ctx, game, req); err != nil {
		return nil, nil, err
	}

	if _, err := gs.GameRepository.AddGame(ctx, game); err != nil {
		return nil, nil, err
	}

	var change *models.RatingChange
	if gs.rateOnRecord {
		if change, err = gs.rater.RateGame(ctx, game); err != nil {
			log.Printf("Game %s stored without rating: %v", game.ID, err)
			change = nil
		}
	}

	if err := gs.rankings.InvalidateRankings(ctx); err != nil {
		log.Printf("Failed to invalidate rankings after game %s: %v", game.ID, err)
	}

	if gs.publisher != nil {
		event := mq.NewGameRecorded(game.ID, game.Player1ID, game.Player2ID, string(game.Result), game.GameDate)
		if err := gs.publisher.PublishGameRecorded(ctx, event); err != nil {
			log.Printf("Failed to publish game %s: %v", game.ID, err)
		}
	}

	return game, change, nil
}

// resolveNames copies the roster names on the game. Unregistered players must come with a name.
func (gs *GameService) resolveNames(ctx context.Context, game *models.Game, req *dto.RecordGameRequest) error {
	roster, err := gs.PlayerRepository.GetPlayers(ctx)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}

	resolve := func(id, given string) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}
		if name := strings.TrimSpace(given); name != "" {
			return name, nil
		}
		return "", fmt.Errorf("%w: "+messages.PlayerNameRequired, ErrInvalidGame, id)
	}

	if game.Player1Name, err = resolve(game.Player1ID, req.Player1Name); err != nil {
		return err
	}
	if game.Player2Name, err = resolve(game.Player2ID, req.Player2Name); err != nil {
		return err
	}
	return nil
}

// ListGames returns the matching games in chronological order.
func (gs *GameService) ListGames(ctx context.Context, filter *filters.GameFilter) ([]*models.Game, error) {
	games, err := gs.GameRepository.GetGames(ctx, filter)
	if err != nil {
		return nil, err
	}
	return elo.SortChronologically(games), nil
}

// UpdateGameAnnotations changes the free text fields of a game. Results are immutable.
func (gs *GameService) UpdateGameAnnotations(ctx context.Context, gameId string, req *dto.UpdateGameRequest) (*models.Game, error) {
	updates := make(map[string]any)
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Opening != nil {
		updates["opening"] = *req.Opening
	}
	if req.Endgame != nil {
		updates["endgame"] = *req.Endgame
	}
	if req.EventID != nil {
		updates["event_id"] = *req.EventID
	}

	if len(updates) > 0 {
		if err := gs.GameRepository.UpdateGame(ctx, gameId, updates); err != nil {
			return nil, err
		}
	}

	return gs.GameRepository.GetGameById(ctx, gameId)
}

// VerifyGame marks a game as confirmed.
func (gs *GameService) VerifyGame(ctx context.Context, gameId, verifiedBy string) (*models.Game, error) {
	err := gs.GameRepository.UpdateGame(ctx, gameId, map[string]any{
		"verified":    true,
		"verified_by": verifiedBy,
		"verified_at": time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return gs.GameRepository.GetGameById(ctx, gameId)
}
