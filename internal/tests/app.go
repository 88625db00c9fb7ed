// Package tests contains helpers for the route tests.
// The apps run without Postgres and Redis.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal"
	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUser     = "test-user"
	TestPassword = "test-password"

	// Fiber's default of 1 second is too short for some endgame solves.
	testTimeout = 30 * 1000
)

// NewTestConfig returns a configuration with credentials and without external services.
func NewTestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "0",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
	}
}

// NewTestApp builds an app for cfg with only the engine available.
func NewTestApp(cfg *config.ServerConfig) *fiber.App {
	return internal.BuildApp(cfg, &services.Services{Engine: services.NewEngine(cfg)})
}

// Do sends a request with an optional JSON payload and token to app.
func Do(t *testing.T, app *fiber.App, method, path string, payload any, token string) *http.Response {
	t.Helper()

	var body io.Reader = http.NoBody
	if payload != nil {
		buf := &bytes.Buffer{}
		require.NoError(t, json.NewEncoder(buf).Encode(payload))
		body = buf
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("x-token", token)
	}

	resp, err := app.Test(req, testTimeout)
	require.NoError(t, err)

	t.Cleanup(func() {
		resp.Body.Close()
	})

	return resp
}
