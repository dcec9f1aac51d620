package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/auto-dns/docker-event-notifier/internal/config"
	"github.com/auto-dns/docker-event-notifier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method      string
	contentType string
	body        []byte
}

func newWebhook(t *testing.T, status int, respBody string) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	reqs := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		reqs <- capturedRequest{method: r.Method, contentType: r.Header.Get("Content-Type"), body: body}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, reqs
}

func sampleNotification() domain.Notification {
	return domain.Notification{
		Title:       "Container Started",
		Description: "Container web1 (abcdef012345) has started.",
		Color:       domain.ColorSuccess,
		Fields: []domain.Field{
			{Name: "Container Name", Value: "web1", Inline: true},
			{Name: "Container ID", Value: "abcdef012345", Inline: true},
			{Name: "Status", Value: "Start", Inline: true},
		},
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDiscord_Notify_Success(t *testing.T) {
	srv, reqs := newWebhook(t, http.StatusNoContent, "")
	d := NewDiscord(&config.NotifyConfig{WebhookURL: srv.URL, NotificationRole: "987654"}, srv.Client())

	require.NoError(t, d.Notify(context.Background(), sampleNotification()))

	req := <-reqs
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "application/json", req.contentType)

	var got map[string]any
	require.NoError(t, json.Unmarshal(req.body, &got))
	assert.Equal(t, "<@&987654>", got["content"])

	embeds, ok := got["embeds"].([]any)
	require.True(t, ok)
	require.Len(t, embeds, 1)
	embed := embeds[0].(map[string]any)
	assert.Equal(t, "Container Started", embed["title"])
	assert.Equal(t, "Container web1 (abcdef012345) has started.", embed["description"])
	assert.EqualValues(t, 65280, embed["color"])
	assert.Equal(t, "2024-05-01T12:00:00Z", embed["timestamp"])

	fields := embed["fields"].([]any)
	require.Len(t, fields, 3)
	assert.Equal(t, map[string]any{"name": "Container Name", "value": "web1", "inline": true}, fields[0])
	assert.Equal(t, map[string]any{"name": "Status", "value": "Start", "inline": true}, fields[2])
}

func TestDiscord_Notify_NonNoContentIsFailure(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		srv, _ := newWebhook(t, status, `{"message": "nope"}`)
		d := NewDiscord(&config.NotifyConfig{WebhookURL: srv.URL}, srv.Client())

		err := d.Notify(context.Background(), sampleNotification())

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, status, statusErr.StatusCode)
		assert.Equal(t, `{"message": "nope"}`, statusErr.Body)
		assert.Contains(t, err.Error(), strconv.Itoa(status))
	}
}

func TestDiscord_Notify_TruncatesLongBodies(t *testing.T) {
	srv, _ := newWebhook(t, http.StatusTooManyRequests, strings.Repeat("x", maxBodyBytes*2))
	d := NewDiscord(&config.NotifyConfig{WebhookURL: srv.URL}, srv.Client())

	err := d.Notify(context.Background(), sampleNotification())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Len(t, statusErr.Body, maxBodyBytes)
}

func TestDiscord_Notify_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := NewDiscord(&config.NotifyConfig{WebhookURL: url}, nil)
	err := d.Notify(context.Background(), sampleNotification())
	require.Error(t, err)

	var statusErr *StatusError
	assert.NotErrorAs(t, err, &statusErr)
}

func TestDiscord_Notify_InvalidURL(t *testing.T) {
	d := NewDiscord(&config.NotifyConfig{WebhookURL: "://not a url"}, nil)
	assert.Error(t, d.Notify(context.Background(), sampleNotification()))
}

func TestNewDiscord_Timeout(t *testing.T) {
	d := NewDiscord(&config.NotifyConfig{}, nil)
	assert.Zero(t, d.client.Timeout, "no deadline unless configured")

	d = NewDiscord(&config.NotifyConfig{Timeout: 3 * time.Second}, nil)
	assert.Equal(t, 3*time.Second, d.client.Timeout)
}

func TestNop_Notify(t *testing.T) {
	assert.NoError(t, Nop{}.Notify(context.Background(), sampleNotification()))
}

func TestNew_SelectsImplementation(t *testing.T) {
	assert.IsType(t, Nop{}, New(&config.NotifyConfig{DryRun: true}))
	assert.IsType(t, &Discord{}, New(&config.NotifyConfig{WebhookURL: "http://localhost/hook"}))
}
