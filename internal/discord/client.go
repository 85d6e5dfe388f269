package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/thetomat/tomat/internal/instrumentation"
	"github.com/thetomat/tomat/internal/logging"
)

// DefaultBaseURL is the Discord REST API root.
const DefaultBaseURL = "https://discord.com/api/v10"

// Client provides access to the Discord REST endpoints the dashboard needs.
// All requests are single-attempt; there is no retry or backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// NewClient creates a Discord API client. If logger is nil, slog.Default()
// is used.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.WithComponent(logger, "discord"),
	}
}

// SetBaseURL overrides the API root. Used by tests to point the client at a
// local test server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetMetrics attaches a metrics recorder for API operation instrumentation.
func (c *Client) SetMetrics(m *instrumentation.Metrics) {
	c.metrics = m
}

// CurrentUser fetches the identity of the token's user (GET /users/@me).
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	var user User
	if err := c.get(ctx, "current_user", "/users/@me", accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserGuilds lists the guilds the token's user belongs to
// (GET /users/@me/guilds). Order is returned as received from Discord.
func (c *Client) UserGuilds(ctx context.Context, accessToken string) ([]Guild, error) {
	var guilds []Guild
	if err := c.get(ctx, "user_guilds", "/users/@me/guilds", accessToken, &guilds); err != nil {
		return nil, err
	}
	return guilds, nil
}

// get performs a single bearer-authorized GET and decodes the JSON response
// into out.
func (c *Client) get(ctx context.Context, op, path, accessToken string, out any) error {
	start := time.Now()
	err := c.doGet(ctx, op, path, accessToken, out)

	status := logging.StatusSuccess
	if err != nil {
		status = logging.StatusError
	}
	if c.metrics != nil {
		c.metrics.RecordDiscordAPIOperation(ctx, op, status, time.Since(start))
	}
	c.logger.Debug("discord api request",
		logging.Operation(op),
		logging.Status(status),
		logging.Duration(time.Since(start)),
		logging.Err(err))

	return err
}

func (c *Client) doGet(ctx context.Context, op, path, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount of the body for the error message.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
