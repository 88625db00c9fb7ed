package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/models"
)

const (
	// Endgame solves can take several seconds.
	clientTimeout = 30 * time.Second
)

// ErrUnexpectedStatus is returned when the server does not respond with a 2xx status.
var ErrUnexpectedStatus = errors.New("server returned unexpected status")

// Client talks to a move server.
type Client struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	httpClient *http.Client
}

func NewClient(config *config.ClientConfig) *Client {
	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}

	slog.Debug("New APIClient created", "server_url", config.ServerURL)

	return client
}

func (c *Client) logRequestAsCurl(req *http.Request) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(req.Method)
	builder.WriteString(" '")
	builder.WriteString(req.URL.String())
	builder.WriteString("'")

	for key, values := range req.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			slog.Error("Failed to read request body", "error", err)
		}

		if len(body) > 0 {
			builder.WriteString(" -d '")
			builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
			builder.WriteString("'")
		}

		// Restore the original body
		req.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	slog.Debug("Sending request", "command", builder.String())
}

// request sends a request and decodes the JSON response into result.
func (c *Client) request(ctx context.Context, method string, path string, payload any, result any) error {
	var body io.Reader = http.NoBody

	if payload != nil {
		buf := &bytes.Buffer{}
		err := json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.config.Token != "" {
		req.Header.Set("X-Token", c.config.Token)
	}

	c.logRequestAsCurl(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResponse struct {
			Error string `json:"error"`
		}

		// Not every error response has a JSON body.
		_ = json.Unmarshal(respBody, &errorResponse)

		return fmt.Errorf("%w %v: %s", ErrUnexpectedStatus, resp.Status, errorResponse.Error)
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// RequestMove asks the server for a move of player on board.
func (c *Client) RequestMove(ctx context.Context, board models.Board, player models.Player) (models.MoveResponse, error) {
	payload := models.MoveRequest{
		Board:  board.Cells(),
		Player: &models.PlayerToken{Player: player},
	}

	var resp models.MoveResponse
	if err := c.request(ctx, http.MethodPost, "/api/ai_move", payload, &resp); err != nil {
		return models.MoveResponse{}, fmt.Errorf("failed to request move: %w", err)
	}

	return resp, nil
}

// GetStats returns the number of decisions per algorithm.
func (c *Client) GetStats(ctx context.Context) ([]models.AlgorithmStats, error) {
	var stats []models.AlgorithmStats
	if err := c.request(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

// GetDecision returns a logged decision.
func (c *Client) GetDecision(ctx context.Context, id string) (models.DecisionRecord, error) {
	var record models.DecisionRecord
	if err := c.request(ctx, http.MethodGet, "/api/decisions/"+url.PathEscape(id), nil, &record); err != nil {
		return models.DecisionRecord{}, fmt.Errorf("failed to get decision: %w", err)
	}

	return record, nil
}

// Version returns the commit the server was built from.
func (c *Client) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse
	if err := c.request(ctx, http.MethodGet, "/version", nil, &version); err != nil {
		return models.VersionResponse{}, fmt.Errorf("failed to get version: %w", err)
	}

	return version, nil
}
