package dto

// EloRecalculation is the outcome of a full rating replay.
type EloRecalculation struct {
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
}

// RatingPreviewParams are the query parameters of a single game preview.
type RatingPreviewParams struct {
	Rating1 int    `form:"rating1" binding:"required,min=1"`
	Rating2 int    `form:"rating2" binding:"required,min=1"`
	Result  string `form:"result" binding:"required,oneof=player1 player2 draw"`
}

// RatingUpdateRequest sets a rating by hand.
type RatingUpdateRequest struct {
	EloRating int `json:"eloRating" binding:"required,min=1"`
}
