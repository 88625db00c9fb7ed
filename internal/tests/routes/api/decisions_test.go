package api_test

import (
	"net/http"
	"testing"

	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/tests"
	"github.com/stretchr/testify/assert"
)

func TestDecisionRoutesAuth(t *testing.T) {
	paths := []string{
		"/api/stats",
		"/api/decisions/00000000-0000-0000-0000-000000000000",
	}

	app := tests.NewTestApp(tests.NewTestConfig())

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := tests.Do(t, app, http.MethodGet, path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			resp = tests.Do(t, app, http.MethodGet, path, nil, "wrong-token")
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// Postgres and Redis are not configured in tests.
			resp = tests.Do(t, app, http.MethodGet, path, nil, tests.TestToken)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		})
	}
}

func TestDecisionRoutesBasicAuth(t *testing.T) {
	app := tests.NewTestApp(tests.NewTestConfig())

	req, err := http.NewRequest(http.MethodGet, "/api/stats", http.NoBody)
	assert.NoError(t, err)
	req.SetBasicAuth(tests.TestUser, tests.TestPassword)

	resp, err := app.Test(req)
	assert.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDecisionRoutesWithoutCredentials(t *testing.T) {
	app := tests.NewTestApp(&config.ServerConfig{ServerHost: "localhost", ServerPort: "0"})

	resp := tests.Do(t, app, http.MethodGet, "/api/stats", nil, "")

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
