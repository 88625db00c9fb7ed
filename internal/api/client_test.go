package api_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/lk16/cubello/internal/api"
	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/engine"
	"github.com/lk16/cubello/internal/models"
	"github.com/lk16/cubello/internal/tests"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	app := tests.NewTestApp(tests.NewTestConfig())
	server := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(server.Close)

	return server
}

func TestClientRequestMove(t *testing.T) {
	server := newTestServer(t)
	client := api.NewClient(&config.ClientConfig{ServerURL: server.URL})

	board := models.NewBoardStart()

	resp, err := client.RequestMove(context.Background(), board, models.PlayerWhite)
	require.NoError(t, err)

	require.Equal(t, engine.AlgorithmAlphaBeta, resp.Algorithm)
	require.NotNil(t, resp.Move)
	require.True(t, board.IsLegalMove(*resp.Move, models.PlayerWhite))
}

func TestClientRequestMoveNoMove(t *testing.T) {
	server := newTestServer(t)
	client := api.NewClient(&config.ClientConfig{ServerURL: server.URL})

	resp, err := client.RequestMove(context.Background(), models.NewBoardEmpty(), models.PlayerBlack)
	require.NoError(t, err)
	require.Nil(t, resp.Move)
}

func TestClientStats(t *testing.T) {
	server := newTestServer(t)

	client := api.NewClient(&config.ClientConfig{ServerURL: server.URL})
	_, err := client.GetStats(context.Background())
	require.ErrorIs(t, err, api.ErrUnexpectedStatus)
	require.ErrorContains(t, err, "401")

	// Redis is not configured.
	client = api.NewClient(&config.ClientConfig{ServerURL: server.URL, Token: tests.TestToken})
	_, err = client.GetStats(context.Background())
	require.ErrorIs(t, err, api.ErrUnexpectedStatus)
	require.ErrorContains(t, err, "503")
}

func TestClientVersion(t *testing.T) {
	server := newTestServer(t)
	client := api.NewClient(&config.ClientConfig{ServerURL: server.URL})

	version, err := client.Version(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, version.Commit)
}
