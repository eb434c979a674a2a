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

// Webhook posts alert texts as {"text": ...} JSON to Slack-compatible
// incoming webhook URLs.
type Webhook struct {
	client    *http.Client
	notifyURL string
	healthURL string
}

// NewWebhook creates a webhook sink. notifyURL receives stock alerts;
// healthURL receives operational messages and may be empty, in which
// case health messages are dropped.
func NewWebhook(notifyURL, healthURL string) *Webhook {
	return &Webhook{
		client:    &http.Client{Timeout: 10 * time.Second},
		notifyURL: notifyURL,
		healthURL: healthURL,
	}
}

// Notify posts a stock alert.
func (w *Webhook) Notify(ctx context.Context, text string) error {
	return w.post(ctx, w.notifyURL, text)
}

// Health posts an operational message. No-op when no health URL is
// configured.
func (w *Webhook) Health(ctx context.Context, text string) error {
	if w.healthURL == "" {
		return nil
	}
	return w.post(ctx, w.healthURL, text)
}

func (w *Webhook) post(ctx context.Context, url, text string) error {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
