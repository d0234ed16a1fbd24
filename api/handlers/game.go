package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"chessclub/api/dto"
	"chessclub/api/filters"
	gameservice "chessclub/api/services/game"
	"chessclub/pkg/database/models"

	"github.com/gin-gonic/gin"
)

const failedToProcessGame = "failed to process the game"

// GameService is the game service used by the handler.
type GameService interface {
	RecordGame(ctx context.Context, req *dto.RecordGameRequest) (*models.Game, *models.RatingChange, error)
	ListGames(ctx context.Context, filter *filters.GameFilter) ([]*models.Game, error)
	UpdateGameAnnotations(ctx context.Context, gameId string, req *dto.UpdateGameRequest) (*models.Game, error)
	VerifyGame(ctx context.Context, gameId, verifiedBy string) (*models.Game, error)
}

// GameHandler is the handler for the game endpoints.
type GameHandler struct {
	gameService GameService
}

type GameHandlerDependencies struct {
	GameService GameService
}

// NewGameHandler creates a new instance of the game handler.
func NewGameHandler(deps *GameHandlerDependencies) *GameHandler {
	return &GameHandler{
		gameService: deps.GameService,
	}
}

// RecordGame handles the submission of a finished game.
func (h *GameHandler) RecordGame(c *gin.Context) {
	var req dto.RecordGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, change, err := h.gameService.RecordGame(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, gameservice.ErrInvalidGame) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to record game: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessGame})
		return
	}

	result := dto.RecordedGame{
		Game:         new(dto.Game).FromModel(game),
		RatingChange: change,
	}
	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// ListGames handles requests for the game log.
func (h *GameHandler) ListGames(c *gin.Context) {
	var qp filters.GameListParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewGameFilter(qp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	games, err := h.gameService.ListGames(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Failed to list games: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessGame})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": new(dto.Game).FromModelSlice(games)})
}

// UpdateGame handles changes to the annotations of a game.
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UpdateGameAnnotations(c.Request.Context(), c.Param("gameId"), &req)
	h.respondGame(c, game, err)
}

// VerifyGame handles the confirmation of a game by an arbiter.
func (h *GameHandler) VerifyGame(c *gin.Context) {
	var req dto.VerifyGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.VerifyGame(c.Request.Context(), c.Param("gameId"), req.VerifiedBy)
	h.respondGame(c, game, err)
}

func (h *GameHandler) respondGame(c *gin.Context, game *models.Game, err error) {
	if err != nil {
		if isNotFound(err, "game") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to update game %s: %v", c.Param("gameId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessGame})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": new(dto.Game).FromModel(game)})
}
