package repositories

import (
	"context"
	"errors"
	"fmt"

	"chessclub/pkg/database/models"
	"chessclub/pkg/messages"

	"gorm.io/gorm"
)

// PlayerRepository is the public interface for accessing the roster.
type PlayerRepository interface {
	GetPlayers(ctx context.Context) ([]*models.Player, error)
	GetPlayerById(ctx context.Context, playerId string) (*models.Player, error)
	AddPlayer(ctx context.Context, player *models.Player) (string, error)
	UpdatePlayer(ctx context.Context, playerId string, updates map[string]any) error
	UpdateStandings(ctx context.Context, players []*models.Player) error
	GetPlayerEloRating(ctx context.Context, playerId string) (int, error)
	UpdatePlayerEloRating(ctx context.Context, playerId string, rating int) error
}

// playerRepository repository structure.
type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// GetPlayers returns the roster in registration order.
func (pr *playerRepository) GetPlayers(ctx context.Context) ([]*models.Player, error) {
	var players []*models.Player

	err := pr.db.WithContext(ctx).
		Order("created_at asc").
		Order("id asc").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the players: %w", err)
	}

	return players, nil
}

// GetPlayerById returns a single roster member.
func (pr *playerRepository) GetPlayerById(ctx context.Context, playerId string) (*models.Player, error) {
	var player models.Player

	err := pr.db.WithContext(ctx).Where("id = ?", playerId).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf(messages.CouldNotFindId, "player")
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't get the player by the ID: %w", err)
	}

	return &player, nil
}

// AddPlayer registers a player and returns its id.
func (pr *playerRepository) AddPlayer(ctx context.Context, player *models.Player) (string, error) {
	if err := pr.db.WithContext(ctx).Create(player).Error; err != nil {
		return "", fmt.Errorf("couldn't create the player: %w", err)
	}
	return player.ID, nil
}

// UpdatePlayer writes the given columns of a player.
func (pr *playerRepository) UpdatePlayer(ctx context.Context, playerId string, updates map[string]any) error {
	result := pr.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", playerId).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("couldn't update the player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf(messages.CouldNotFindId, "player")
	}
	return nil
}

// UpdateStandings writes the cached aggregates of every player in a single transaction.
func (pr *playerRepository) UpdateStandings(ctx context.Context, players []*models.Player) error {
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range players {
			err := tx.Model(&models.Player{}).
				Where("id = ?", p.ID).
				Updates(map[string]any{
					"games_played": p.GamesPlayed,
					"wins":         p.Wins,
					"draws":        p.Draws,
					"losses":       p.Losses,
					"points":       p.Points,
					"rank":         p.Rank,
					"last_active":  p.LastActive,
				}).Error
			if err != nil {
				return fmt.Errorf("couldn't update the standings of %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// GetPlayerEloRating returns the persisted rating, the default one for unknown players.
func (pr *playerRepository) GetPlayerEloRating(ctx context.Context, playerId string) (int, error) {
	var player models.Player

	err := pr.db.WithContext(ctx).Select("elo_rating").Where("id = ?", playerId).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultEloRating, nil
	}
	if err != nil {
		return 0, fmt.Errorf("couldn't get the player rating: %w", err)
	}

	return player.CurrentRating(), nil
}

// UpdatePlayerEloRating writes the rating of a single player.
func (pr *playerRepository) UpdatePlayerEloRating(ctx context.Context, playerId string, rating int) error {
	return pr.UpdatePlayer(ctx, playerId, map[string]any{"elo_rating": rating})
}
