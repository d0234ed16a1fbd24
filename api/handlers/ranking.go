package handlers

import (
	"context"
	"log"
	"net/http"

	"chessclub/api/dto"
	"chessclub/api/filters"
	"chessclub/pkg/database/models"
	"chessclub/pkg/messages"

	"github.com/gin-gonic/gin"
)

// RankingService serves the ladder.
type RankingService interface {
	GetRankings(ctx context.Context, filter *filters.RankingFilter) ([]*models.Player, error)
}

// Ranking handler.
type RankingHandler struct {
	rankingService RankingService
}

type RankingHandlerDependencies struct {
	RankingService RankingService
}

// Create a new instance of the ranking handler.
func NewRankingHandler(deps *RankingHandlerDependencies) *RankingHandler {
	return &RankingHandler{
		rankingService: deps.RankingService,
	}
}

// Handler for getting the rankings.
func (h *RankingHandler) GetRankings(c *gin.Context) {
	var qp filters.RankingParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ranked, err := h.rankingService.GetRankings(c.Request.Context(), filters.NewRankingFilter(qp))
	if err != nil {
		log.Printf("Failed to get rankings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.FailedToRetrieveRankings})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": new(dto.Player).FromModelSlice(ranked)})
}
