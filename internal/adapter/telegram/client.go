// Package telegram implements the alert delivery transport against the
// Telegram Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client posts messages to a single chat via the Bot API sendMessage call.
// It implements notify.Transport. The bot token and chat id are opaque
// credentials supplied by configuration; the client never constructs or
// validates them.
type Client struct {
	token      string
	chatID     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Telegram transport for the given bot token and chat.
func NewClient(token, chatID string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token:  token,
		chatID: chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.telegram.org",
		logger:  logger,
	}
}

// apiResponse is the subset of the Bot API envelope the client cares about.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one message with HTML parse mode. A non-OK API response is
// returned as an error with the API's own description; the caller decides
// whether to retry.
func (c *Client) Send(ctx context.Context, message string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	form := url.Values{
		"chat_id":    {c.chatID},
		"text":       {message},
		"parse_mode": {"HTML"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram API rejected message: %s", apiResp.Description)
	}
	return nil
}
