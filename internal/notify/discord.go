package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/domain"
)

// maxBodyBytes bounds how much of a failed response is kept for the log.
const maxBodyBytes = 4096

type Discord struct {
	url     string
	content string
	client  *http.Client
}

// NewDiscord returns a webhook notifier. A zero cfg.Timeout leaves the HTTP
// client without a deadline.
func NewDiscord(cfg *config.NotifyConfig, client *http.Client) *Discord {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Discord{
		url:     cfg.WebhookURL,
		content: RoleMention(cfg.NotificationRole),
		client:  client,
	}
}

// RoleMention returns the message content that pings the given role.
func RoleMention(role string) string {
	return fmt.Sprintf("<@&%s>", role)
}

// Notify posts n as the only embed of one webhook message.
func (d *Discord) Notify(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(toWirePayload(d.content, n))
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
}
