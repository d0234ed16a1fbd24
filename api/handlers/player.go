package handlers

import (
	"context"
	"log"
	"net/http"

	"chessclub/api/dto"
	"chessclub/pkg/database/models"

	"github.com/gin-gonic/gin"
)

const failedToProcessPlayer = "failed to process the player"

// PlayerService is the roster service used by the handler.
type PlayerService interface {
	RegisterPlayer(ctx context.Context, req *dto.RegisterPlayerRequest) (*models.Player, error)
	GetPlayer(ctx context.Context, playerId string) (*models.Player, error)
}

// AchievementService evaluates the achievements of a player.
type AchievementService interface {
	GetPlayerAchievements(ctx context.Context, playerId string) ([]models.PlayerAchievement, error)
}

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	playerService      PlayerService
	achievementService AchievementService
}

type PlayerHandlerDependencies struct {
	PlayerService      PlayerService
	AchievementService AchievementService
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(deps *PlayerHandlerDependencies) *PlayerHandler {
	return &PlayerHandler{
		playerService:      deps.PlayerService,
		achievementService: deps.AchievementService,
	}
}

// RegisterPlayer handles new roster members.
func (h *PlayerHandler) RegisterPlayer(c *gin.Context) {
	var req dto.RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.playerService.RegisterPlayer(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Failed to register player: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessPlayer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": new(dto.Player).FromModel(player)})
}

// GetPlayer handles requests for a single player and its standing.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerId := c.Param("playerId")

	player, err := h.playerService.GetPlayer(c.Request.Context(), playerId)
	if err != nil {
		if isNotFound(err, "player") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to get player %s: %v", playerId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessPlayer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": new(dto.Player).FromModel(player)})
}

// GetPlayerAchievements handles requests for the achievements of a player.
func (h *PlayerHandler) GetPlayerAchievements(c *gin.Context) {
	playerId := c.Param("playerId")

	result, err := h.achievementService.GetPlayerAchievements(c.Request.Context(), playerId)
	if err != nil {
		log.Printf("Failed to evaluate achievements of %s: %v", playerId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failedToProcessPlayer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
