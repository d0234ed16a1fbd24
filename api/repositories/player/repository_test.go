package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chessclub/internal/testutil"
	"chessclub/pkg/database/models"
	"chessclub/pkg/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewPlayerRepository(t *testing.T) {
	repository := NewPlayerRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestGetPlayers(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPlayerRepository(db)
	seedPlayerTestData(t, db)

	players, err := repository.GetPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "anna", players[0].ID)
	assert.Equal(t, "ben", players[1].ID)
	assert.Equal(t, "carl", players[2].ID)
	assert.Equal(t, models.DefaultEloRating, players[2].EloRating)
}

func TestGetPlayerById(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPlayerRepository(db)
	seedPlayerTestData(t, db)

	tests := []struct {
		name          string
		playerId      string
		expectedName  string
		expectedError error
	}{
		{name: "existentplayer", playerId: "ben", expectedName: "Ben"},
		{name: "nonexistentplayer", playerId: "dora", expectedError: fmt.Errorf(messages.CouldNotFindId, "player")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repository.GetPlayerById(context.Background(), tt.playerId)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, result.Name)
			assert.Equal(t, fixedDate.Add(time.Hour), result.CreatedAt.UTC())
		})
	}
}

func TestPlayerEloRating(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPlayerRepository(db)
	seedPlayerTestData(t, db)
	ctx := context.Background()

	rating, err := repository.GetPlayerEloRating(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, 1210, rating)

	rating, err = repository.GetPlayerEloRating(ctx, "unregistered")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultEloRating, rating)

	require.NoError(t, repository.UpdatePlayerEloRating(ctx, "ben", 1016))
	rating, err = repository.GetPlayerEloRating(ctx, "ben")
	require.NoError(t, err)
	assert.Equal(t, 1016, rating)

	err = repository.UpdatePlayerEloRating(ctx, "unregistered", 1016)
	assert.EqualError(t, err, fmt.Sprintf(messages.CouldNotFindId, "player"))
}

func TestAddPlayerAndUpdateStandings(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewPlayerRepository(db)
	seedPlayerTestData(t, db)
	ctx := context.Background()

	id, err := repository.AddPlayer(ctx, &models.Player{Name: "Dora", Grade: "C"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	lastActive := fixedDate.AddDate(0, 1, 0)
	err = repository.UpdateStandings(ctx, []*models.Player{
		{ID: id, GamesPlayed: 2, Wins: 1, Losses: 1, Points: 3, Rank: 1, LastActive: &lastActive},
	})
	require.NoError(t, err)

	player, err := repository.GetPlayerById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, player.GamesPlayed)
	assert.Equal(t, 3.0, player.Points)
	assert.Equal(t, 1, player.Rank)
	assert.Equal(t, lastActive, player.LastActive.UTC())
	assert.Equal(t, models.DefaultEloRating, player.EloRating)
}
