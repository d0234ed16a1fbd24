package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameValidate(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		game     Game
		expected error
	}{
		{
			name:     "valid",
			game:     Game{Player1ID: "a", Player2ID: "b", Result: ResultDraw, GameDate: date},
			expected: nil,
		},
		{
			name:     "missing participant",
			game:     Game{Player1ID: "a", Result: ResultDraw, GameDate: date},
			expected: ErrMissingParticipant,
		},
		{
			name:     "same participant",
			game:     Game{Player1ID: "a", Player2ID: "a", Result: ResultDraw, GameDate: date},
			expected: ErrSameParticipant,
		},
		{
			name:     "unknown result",
			game:     Game{Player1ID: "a", Player2ID: "b", Result: "white", GameDate: date},
			expected: ErrUnknownResult,
		},
		{
			name:     "missing date",
			game:     Game{Player1ID: "a", Player2ID: "b", Result: ResultPlayer1Wins},
			expected: ErrMissingGameDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.game.Validate())
		})
	}
}

func TestGamePerspective(t *testing.T) {
	game := &Game{Player1ID: "a", Player1Name: "Ana", Player2ID: "b", Player2Name: "Bia", Result: ResultPlayer2Wins}

	assert.True(t, game.Involves("a"))
	assert.False(t, game.Involves("c"))
	assert.Equal(t, "b", game.OpponentOf("a"))
	assert.Equal(t, "a", game.OpponentOf("b"))
	assert.Equal(t, "Bia", game.NameOf("b"))
	assert.True(t, game.IsWinFor("b"))
	assert.True(t, game.IsLossFor("a"))
	assert.False(t, game.IsDraw())
}

func TestGameRatingChange(t *testing.T) {
	game := &Game{}
	assert.Nil(t, game.RatingChange())

	p1, p2 := 16, -16
	game.Player1RatingChange = &p1
	game.Player2RatingChange = &p2
	assert.Equal(t, &RatingChange{Player1: 16, Player2: -16}, game.RatingChange())
}
