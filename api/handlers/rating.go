package handlers

import (
	"context"
	"log"
	"net/http"

	"chessclub/api/dto"
	"chessclub/pkg/database/models"
	"chessclub/pkg/messages"

	"github.com/gin-gonic/gin"
)

// RatingService owns the ELO ratings.
type RatingService interface {
	CalculateEloForAllGames(ctx context.Context) (*dto.EloRecalculation, error)
	CalculateEloChange(rating1, rating2 int, result models.GameResult) (models.RatingChange, error)
	GetPlayerEloRating(ctx context.Context, playerId string) (int, error)
	UpdatePlayerEloRating(ctx context.Context, playerId string, rating int) error
}

// RatingHandler is the handler for the rating endpoints.
type RatingHandler struct {
	ratingService RatingService
}

type RatingHandlerDependencies struct {
	RatingService RatingService
}

// NewRatingHandler creates a new instance of the rating handler.
func NewRatingHandler(deps *RatingHandlerDependencies) *RatingHandler {
	return &RatingHandler{
		ratingService: deps.RatingService,
	}
}

// RecalculateRatings replays every game and rewrites the ratings.
func (h *RatingHandler) RecalculateRatings(c *gin.Context) {
	result, err := h.ratingService.CalculateEloForAllGames(c.Request.Context())
	if err != nil {
		if err.Error() == messages.OperationInProgress {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to recalculate ratings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.FailedToCalculateRatings})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// PreviewRating computes the change of a hypothetical game without storing anything.
func (h *RatingHandler) PreviewRating(c *gin.Context) {
	var qp dto.RatingPreviewParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	change, err := h.ratingService.CalculateEloChange(qp.Rating1, qp.Rating2, models.GameResult(qp.Result))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": change})
}

// GetPlayerRating returns the stored rating of a player.
func (h *RatingHandler) GetPlayerRating(c *gin.Context) {
	playerId := c.Param("playerId")

	rating, err := h.ratingService.GetPlayerEloRating(c.Request.Context(), playerId)
	if err != nil {
		log.Printf("Failed to get the rating of %s: %v", playerId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": messages.FailedToCalculateRatings})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"playerId": playerId, "eloRating": rating}})
}

// UpdatePlayerRating sets the rating of a roster member by hand.
func (h *RatingHandler) UpdatePlayerRating(c *gin.Context) {
	var req dto.RatingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerId := c.Param("playerId")
	if err := h.ratingService.UpdatePlayerEloRating(c.Request.Context(), playerId, req.EloRating); err != nil {
		switch {
		case isNotFound(err, "player"):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err.Error() == messages.InvalidRating:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to update the rating of %s: %v", playerId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": messages.FailedToCalculateRatings})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{"playerId": playerId, "eloRating": req.EloRating}})
}
