package chatfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"signal_go/internal/domain"
	"signal_go/internal/infra"
)

// Client fetches single messages from the chat gateway REST API
// (batch mode boundary layer).
type Client struct {
	baseURL    string
	group      string
	session    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new chat gateway client.
func NewClient(cfg *infra.Config) *Client {
	return &Client{
		baseURL: cfg.Telegram.RestURL,
		group:   cfg.Telegram.Group,
		session: cfg.Telegram.Session,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		logger: slog.Default().With("module", "chatfeed_client"),
	}
}

// Fetch retrieves one message by id from the configured group.
func (c *Client) Fetch(ctx context.Context, msgID int64) (*domain.Message, error) {
	url := fmt.Sprintf("%s/groups/%s/messages/%d", c.baseURL, c.group, msgID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session", c.session)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewFeedError("fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("msg %d: %w", msgID, domain.ErrMessageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewFeedError("fetch", fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFeedError("read", err)
	}

	var f frame
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("msg %d: malformed response: %w", msgID, err)
	}
	if f.ID == 0 {
		return nil, fmt.Errorf("msg %d: %w", msgID, domain.ErrMessageNotFound)
	}

	return &domain.Message{ID: f.ID, Text: f.Text, ReplyTo: f.ReplyTo}, nil
}
