// Package notify is the client for the external messaging gateway that
// delivers WhatsApp/SMS notifications to parents. The gateway owns delivery,
// templates and retries on its side; this client only posts messages.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the messaging gateway.
type Client struct {
	baseURL string
	skip    bool
	http    *http.Client
}

// New creates a client. When skip is set (dev without a gateway), sends
// succeed silently.
func New(baseURL string, skip bool) *Client {
	return &Client{
		baseURL: baseURL,
		skip:    skip,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Message is one outbound parent notification.
type Message struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

type sendResponse struct {
	Accepted  bool   `json:"accepted"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// Send posts one message to the gateway.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if c.skip {
		return "skipped", nil
	}
	if msg.Phone == "" {
		return "", fmt.Errorf("notify: empty phone")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("notify: gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("notify: gateway returned %d: %s", resp.StatusCode, string(raw))
	}

	var out sendResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("notify: decode response: %w", err)
	}
	if !out.Accepted {
		return "", fmt.Errorf("notify: gateway rejected message: %s", out.Error)
	}
	return out.MessageID, nil
}

// Health probes the gateway.
func (c *Client) Health(ctx context.Context) error {
	if c.skip {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify: gateway unhealthy: %d", resp.StatusCode)
	}
	return nil
}
