package filters

import (
	"strings"

	"chessclub/pkg/database/models"
)

// Query parameters for the rankings.
type RankingParams struct {
	Grade string `form:"grade"`
	Limit int    `form:"limit" binding:"omitempty,min=1"`
}

// RankingFilter narrows an already ranked list. Ranks are never reassigned.
type RankingFilter struct {
	Grade string
	Limit int
}

// NewRankingFilter builds the filter from the query parameters.
func NewRankingFilter(params RankingParams) *RankingFilter {
	return &RankingFilter{
		Grade: strings.TrimSpace(params.Grade),
		Limit: params.Limit,
	}
}

// Apply returns the ranked players that match, keeping the order.
func (f *RankingFilter) Apply(players []*models.Player) []*models.Player {
	filtered := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if f != nil && f.Grade != "" && !strings.EqualFold(p.Grade, f.Grade) {
			continue
		}
		filtered = append(filtered, p)
		if f != nil && f.Limit > 0 && len(filtered) == f.Limit {
			break
		}
	}
	return filtered
}
