package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIMove(t *testing.T) {
	start := models.NewBoardStart()

	testCases := []struct {
		name          string
		payload       any
		wantAlgorithm string
		wantPlayer    models.Player
		wantEmpty     int
		wantMove      bool
	}{
		{
			name:          "black by name",
			payload:       map[string]any{"board": start.Cells(), "player": "black"},
			wantAlgorithm: engine.AlgorithmAlphaBeta,
			wantPlayer:    models.PlayerBlack,
			wantEmpty:     56,
			wantMove:      true,
		},
		{
			name:          "white by number",
			payload:       map[string]any{"board": start.Cells(), "player": -1},
			wantAlgorithm: engine.AlgorithmAlphaBeta,
			wantPlayer:    models.PlayerWhite,
			wantEmpty:     56,
			wantMove:      true,
		},
		{
			name:          "no move",
			payload:       map[string]any{"board": models.NewBoardEmpty().Cells(), "player": "white"},
			wantAlgorithm: engine.AlgorithmAlphaBeta,
			wantPlayer:    models.PlayerWhite,
			wantEmpty:     64,
			wantMove:      false,
		},
	}

	app := tests.NewTestApp(tests.NewTestConfig())

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			// No token needed, moves are public.
			resp := tests.Do(t, app, http.MethodPost, "/api/ai_move", tt.payload, "")

			require.Equal(t, http.StatusOK, resp.StatusCode)

			var response models.MoveResponse
			err := json.NewDecoder(resp.Body).Decode(&response)
			require.NoError(t, err)

			assert.Equal(t, tt.wantAlgorithm, response.Algorithm)
			assert.Equal(t, tt.wantEmpty, response.EmptyCells)
			assert.NotEmpty(t, response.ID)

			if !tt.wantMove {
				assert.Nil(t, response.Move)
				return
			}

			require.NotNil(t, response.Move)
			assert.True(t, start.IsLegalMove(*response.Move, tt.wantPlayer))
		})
	}
}

func TestAIMoveNullMove(t *testing.T) {
	app := tests.NewTestApp(tests.NewTestConfig())

	payload := map[string]any{"board": models.NewBoardEmpty().Cells(), "player": "black"}
	resp := tests.Do(t, app, http.MethodPost, "/api/ai_move", payload, "")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response map[string]any
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	move, ok := response["move"]
	require.True(t, ok)
	require.Nil(t, move)
}

func TestAIMoveBadRequest(t *testing.T) {
	start := models.NewBoardStart().Cells()

	testCases := []struct {
		name    string
		payload any
	}{
		{name: "no payload", payload: nil},
		{name: "unknown player", payload: map[string]any{"board": start, "player": "green"}},
		{name: "player out of range", payload: map[string]any{"board": start, "player": 2}},
		{name: "missing player", payload: map[string]any{"board": start}},
		{name: "missing board", payload: map[string]any{"player": "black"}},
		{name: "short board", payload: map[string]any{"board": start[:3], "player": "black"}},
		{name: "bad cell", payload: map[string]any{
			"board":  [][][]int{{{5, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}},
			"player": "black",
		}},
	}

	app := tests.NewTestApp(tests.NewTestConfig())

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodPost, "/api/ai_move", tt.payload, "")

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var response map[string]string
			err := json.NewDecoder(resp.Body).Decode(&response)
			require.NoError(t, err)
			assert.NotEmpty(t, response["error"])
		})
	}
}

func TestAIMoveCache(t *testing.T) {
	payload := map[string]any{"board": models.NewBoardStart().Cells(), "player": "black"}

	decide := func(app *fiber.App) models.MoveResponse {
		resp := tests.Do(t, app, http.MethodPost, "/api/ai_move", payload, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var response models.MoveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		return response
	}

	// Without configuration nothing is cached.
	app := tests.NewTestApp(tests.NewTestConfig())
	require.False(t, decide(app).Cached)
	require.False(t, decide(app).Cached)

	cfg := tests.NewTestConfig()
	cfg.DecisionCacheSize = 10
	app = tests.NewTestApp(cfg)

	first := decide(app)
	second := decide(app)

	require.False(t, first.Cached)
	require.True(t, second.Cached)
	require.Equal(t, first.Move, second.Move)
	require.NotEqual(t, first.ID, second.ID)
	require.LessOrEqual(t, second.DurationMS, first.DurationMS)
}
