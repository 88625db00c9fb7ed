package routes_test

import (
	"net/http"
	"testing"

	"github.com/lk16/cubello/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestRootEndpoint(t *testing.T) {
	app := tests.NewTestApp(tests.NewTestConfig())

	resp := tests.Do(t, app, http.MethodGet, "/", nil, "")

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/version", resp.Header.Get("Location"))
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	app := tests.NewTestApp(tests.NewTestConfig())

	resp := tests.Do(t, app, http.MethodGet, "/ws", nil, "")

	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
