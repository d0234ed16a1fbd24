package filters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chessclub/pkg/database/models"
)

// DateLayout is the format of the game dates on the query string.
const DateLayout = "2006-01-02"

// Query parameters for the game list.
type GameListParams struct {
	PlayerID string `form:"playerId"`
	GameType string `form:"gameType"`
	From     string `form:"from"`
	To       string `form:"to"`
	Result   string `form:"result"`
	EventID  string `form:"eventId"`
	Verified string `form:"verified"`
}

// GameFilter narrows the game log. Empty fields match everything.
type GameFilter struct {
	PlayerID string
	GameType models.GameType
	From     *time.Time
	To       *time.Time
	Result   models.GameResult
	EventID  string
	Verified *bool
}

// NewGameFilter validates the query parameters and builds the filter.
func NewGameFilter(params GameListParams) (*GameFilter, error) {
	filter := &GameFilter{
		PlayerID: strings.TrimSpace(params.PlayerID),
		EventID:  strings.TrimSpace(params.EventID),
	}

	if params.GameType != "" {
		filter.GameType = models.GameType(params.GameType)
		if !filter.GameType.Valid() {
			return nil, fmt.Errorf("invalid game type %q", params.GameType)
		}
	}

	if params.Result != "" {
		filter.Result = models.GameResult(params.Result)
		if !filter.Result.Valid() {
			return nil, fmt.Errorf("invalid result %q", params.Result)
		}
	}

	var err error
	if filter.From, err = parseDate(params.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate(params.To); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("date range ends before it starts")
	}

	if params.Verified != "" {
		verified, err := strconv.ParseBool(params.Verified)
		if err != nil {
			return nil, fmt.Errorf("invalid verified flag %q", params.Verified)
		}
		filter.Verified = &verified
	}

	return filter, nil
}

// Matches reports whether a game passes every set field.
func (f *GameFilter) Matches(game *models.Game) bool {
	if f == nil {
		return true
	}
	if f.PlayerID != "" && !game.Involves(f.PlayerID) {
		return false
	}
	if f.GameType != "" && game.GameType != f.GameType {
		return false
	}
	if f.From != nil && game.GameDate.Before(*f.From) {
		return false
	}
	if f.To != nil && game.GameDate.After(*f.To) {
		return false
	}
	if f.Result != "" && game.Result != f.Result {
		return false
	}
	if f.EventID != "" && (game.EventID == nil || *game.EventID != f.EventID) {
		return false
	}
	if f.Verified != nil && game.Verified != *f.Verified {
		return false
	}
	return true
}

// Apply returns the games that match, in their original order.
func (f *GameFilter) Apply(games []*models.Game) []*models.Game {
	filtered := make([]*models.Game, 0, len(games))
	for _, game := range games {
		if f.Matches(game) {
			filtered = append(filtered, game)
		}
	}
	return filtered
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected %s", value, DateLayout)
	}
	return &date, nil
}
