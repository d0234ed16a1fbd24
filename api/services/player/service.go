package playerservice

import (
	"context"
	"log"
	"strings"

	"chessclub/api/dto"
	"chessclub/api/filters"
	playerrepo "chessclub/api/repositories/player"
	"chessclub/pkg/database/models"

	"gorm.io/gorm"
)

// RankingService is the part of the ranking service the roster needs.
type RankingService interface {
	GetRankings(ctx context.Context, filter *filters.RankingFilter) ([]*models.Player, error)
	InvalidateRankings(ctx context.Context) error
}

// PlayerService manages the roster.
type PlayerService struct {
	db       *gorm.DB
	rankings RankingService

	PlayerRepository playerrepo.PlayerRepository
}

type PlayerServiceDeps struct {
	DB       *gorm.DB
	Rankings RankingService
}

// NewPlayerService creates a service for handling player services.
func NewPlayerService(deps *PlayerServiceDeps) *PlayerService {
	return &PlayerService{
		db:               deps.DB,
		rankings:         deps.Rankings,
		PlayerRepository: playerrepo.NewPlayerRepository(deps.DB),
	}
}

// RegisterPlayer adds a roster member.
func (ps *PlayerService) RegisterPlayer(ctx context.Context, req *dto.RegisterPlayerRequest) (*models.Player, error) {
	player := &models.Player{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		Grade:     strings.TrimSpace(req.Grade),
		Email:     strings.TrimSpace(req.Email),
		EloRating: req.EloRating,
	}

	if _, err := ps.PlayerRepository.AddPlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := ps.rankings.InvalidateRankings(ctx); err != nil {
		log.Printf("Failed to invalidate rankings after registering %s: %v", player.ID, err)
	}

	return player, nil
}

// GetPlayer returns a roster member with its live standing.
func (ps *PlayerService) GetPlayer(ctx context.Context, playerId string) (*models.Player, error) {
	ranked, err := ps.rankings.GetRankings(ctx, nil)
	if err != nil {
		log.Printf("Rankings unavailable, returning the stored player %s: %v", playerId, err)
	}

	for _, p := range ranked {
		if p.ID == playerId {
			return p, nil
		}
	}

	return ps.PlayerRepository.GetPlayerById(ctx, playerId)
}
