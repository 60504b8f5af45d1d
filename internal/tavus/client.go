package tavus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"lead-intake-go/internal/logger"
)

// Client talks to the conversation platform API. All calls carry the
// x-api-key header; RecordingURL is strictly best-effort.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

func New(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 12 * time.Second},
		log:        logger.NewComponent("tavus"),
	}
}

// Configured reports whether a platform credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// RecordingURL looks up the durable recording URL for a conversation via
// the verbose conversation endpoint. Every failure is logged and reported
// as an empty URL; the caller treats that as "recording still processing".
func (c *Client) RecordingURL(ctx context.Context, conversationID string) string {
	if !c.Configured() {
		return ""
	}

	url := fmt.Sprintf("%s/conversations/%s?verbose=true", c.baseURL, conversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.WithError(err).Warn("recording lookup request build failed")
		return ""
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("recording lookup failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("http_status", resp.StatusCode).Warn("recording lookup non-OK")
		return ""
	}

	var convo struct {
		RecordingURL string `json:"recording_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&convo); err != nil {
		c.log.WithError(err).Warn("recording lookup decode failed")
		return ""
	}
	if convo.RecordingURL != "" {
		c.log.WithField("recording_url", convo.RecordingURL).Info("captured recording URL")
	}
	return convo.RecordingURL
}

// CreateConversation starts a new avatar session and returns the raw
// platform response (conversation_id, conversation_url, ...).
func (c *Client) CreateConversation(ctx context.Context, body map[string]any) (map[string]any, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("platform API key not configured")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal conversation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/conversations", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("create conversation: status %d: %s", resp.StatusCode, raw)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode conversation response: %w", err)
	}
	return out, nil
}

// EndConversation tells the platform to terminate a running session.
func (c *Client) EndConversation(ctx context.Context, conversationID string) error {
	if !c.Configured() {
		return fmt.Errorf("platform API key not configured")
	}

	url := fmt.Sprintf("%s/conversations/%s/end", c.baseURL, conversationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("end conversation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("end conversation: status %d: %s", resp.StatusCode, raw)
	}
	c.log.WithField("conversation_id", conversationID).Info("conversation ended")
	return nil
}
