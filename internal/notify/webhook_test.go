package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingServer struct {
	mu       sync.Mutex
	payloads []map[string]string
	headers  []string
	status   int
}

func newRecordingServer(t *testing.T, status int) (*recordingServer, *httptest.Server) {
	t.Helper()
	rs := &recordingServer{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(body, &payload))

		rs.mu.Lock()
		rs.payloads = append(rs.payloads, payload)
		rs.headers = append(rs.headers, r.Header.Get("Content-Type"))
		rs.mu.Unlock()

		w.WriteHeader(rs.status)
	}))
	t.Cleanup(srv.Close)
	return rs, srv
}

func TestWebhook_Notify(t *testing.T) {
	rs, srv := newRecordingServer(t, http.StatusOK)
	w := NewWebhook(srv.URL, "")

	err := w.Notify(context.Background(), "Widget: 3 in stock at Walmart, Main St")
	require.NoError(t, err)

	require.Len(t, rs.payloads, 1)
	assert.Equal(t, map[string]string{"text": "Widget: 3 in stock at Walmart, Main St"}, rs.payloads[0])
	assert.Equal(t, "application/json", rs.headers[0])
}

func TestWebhook_NotifyErrorStatus(t *testing.T) {
	_, srv := newRecordingServer(t, http.StatusInternalServerError)
	w := NewWebhook(srv.URL, "")

	err := w.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWebhook_HealthWithoutURL(t *testing.T) {
	rs, srv := newRecordingServer(t, http.StatusOK)

	// Health URL unset: health messages are dropped, not sent to the
	// alert URL.
	w := NewWebhook(srv.URL, "")
	require.NoError(t, w.Health(context.Background(), "Starting check..."))
	assert.Empty(t, rs.payloads)
}

func TestWebhook_HealthWithURL(t *testing.T) {
	rs, srv := newRecordingServer(t, http.StatusOK)
	w := NewWebhook("http://127.0.0.1:0/unused", srv.URL)

	require.NoError(t, w.Health(context.Background(), "Starting check..."))
	require.Len(t, rs.payloads, 1)
	assert.Equal(t, "Starting check...", rs.payloads[0]["text"])
}

func TestLogger_NeverFails(t *testing.T) {
	l := NewLogger(nil)
	assert.NoError(t, l.Notify(context.Background(), "alert"))
	assert.NoError(t, l.Health(context.Background(), "health"))
}
