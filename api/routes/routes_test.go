package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chessclub/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	router.SetupRoutes(
		&handlers.GameHandler{},
		&handlers.PlayerHandler{},
		&handlers.RankingHandler{},
		&handlers.RatingHandler{},
		"ignored",
	)

	registered := make(map[string]bool)
	for _, route := range router.engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/games",
		"GET /api/v1/games",
		"PATCH /api/v1/games/:gameId",
		"POST /api/v1/games/:gameId/verify",
		"POST /api/v1/players",
		"GET /api/v1/players/:playerId",
		"GET /api/v1/players/:playerId/achievements",
		"GET /api/v1/players/:playerId/rating",
		"PUT /api/v1/players/:playerId/rating",
		"GET /api/v1/rankings",
		"POST /api/v1/ratings/recalculate",
		"GET /api/v1/ratings/preview",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
	assert.Len(t, registered, len(expected))
}

func TestUnknownRoute(t *testing.T) {
	router := setupTestRouter()
	router.SetupRoutes(&handlers.RankingHandler{})

	w := httptest.NewRecorder()
	router.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
