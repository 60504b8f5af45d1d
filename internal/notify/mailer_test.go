package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerSend(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/emails", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailer("test-key", srv.URL)
	err := m.Send(context.Background(), Email{
		From:    "Amy <noreply@example.com>",
		To:      []string{"jane@example.com", "review@example.com"},
		Subject: "Next Steps",
		HTML:    "<p>hi</p>",
		ReplyTo: "jane@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Amy <noreply@example.com>", captured["from"])
	assert.Equal(t, []any{"jane@example.com", "review@example.com"}, captured["to"])
	assert.Equal(t, "Next Steps", captured["subject"])
	assert.Equal(t, "<p>hi</p>", captured["html"])
	assert.Equal(t, "jane@example.com", captured["reply_to"])
}

func TestMailerSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid sender"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := NewMailer("test-key", srv.URL)
	err := m.Send(context.Background(), Email{To: []string{"x@example.com"}})
	assert.ErrorContains(t, err, "422")
}

func TestMailerUnconfigured(t *testing.T) {
	m := NewMailer("", "http://unused.example.com")
	assert.False(t, m.Configured())
	assert.Error(t, m.Send(context.Background(), Email{}))
}
