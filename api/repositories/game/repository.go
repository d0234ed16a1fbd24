package repositories

import (
	"context"
	"errors"
	"fmt"

	"chessclub/api/filters"
	"chessclub/pkg/database/models"
	"chessclub/pkg/messages"

	"gorm.io/gorm"
)

// GameRepository is the public interface for accessing the game log.
type GameRepository interface {
	GetGames(ctx context.Context, filter *filters.GameFilter) ([]*models.Game, error)
	GetGameById(ctx context.Context, gameId string) (*models.Game, error)
	AddGame(ctx context.Context, game *models.Game) (string, error)
	UpdateGame(ctx context.Context, gameId string, updates map[string]any) error
}

// gameRepository repository structure.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// GetGames returns the whole log in recording order, narrowed by the filter after retrieval.
func (gr *gameRepository) GetGames(ctx context.Context, filter *filters.GameFilter) ([]*models.Game, error) {
	var games []*models.Game

	err := gr.db.WithContext(ctx).
		Order("created_at asc").
		Order("id asc").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the games: %w", err)
	}

	return filter.Apply(games), nil
}

// GetGameById returns a single game.
func (gr *gameRepository) GetGameById(ctx context.Context, gameId string) (*models.Game, error) {
	var game models.Game

	err := gr.db.WithContext(ctx).Where("id = ?", gameId).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf(messages.CouldNotFindId, "game")
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't get the game by the ID: %w", err)
	}

	return &game, nil
}

// AddGame stores a new game and returns its id.
func (gr *gameRepository) AddGame(ctx context.Context, game *models.Game) (string, error) {
	if err := gr.db.WithContext(ctx).Create(game).Error; err != nil {
		return "", fmt.Errorf("couldn't create the game: %w", err)
	}
	return game.ID, nil
}

// UpdateGame writes the given columns of a game.
func (gr *gameRepository) UpdateGame(ctx context.Context, gameId string, updates map[string]any) error {
	result := gr.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", gameId).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("couldn't update the game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf(messages.CouldNotFindId, "game")
	}
	return nil
}
