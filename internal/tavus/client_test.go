package tavus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/c1", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("verbose"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		fmt.Fprint(w, `{"conversation_id": "c1", "recording_url": "https://rec.example.com/c1.mp4"}`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	assert.Equal(t, "https://rec.example.com/c1.mp4", c.RecordingURL(context.Background(), "c1"))
}

func TestRecordingURLAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"conversation_id": "c1"}`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	assert.Equal(t, "", c.RecordingURL(context.Background(), "c1"))
}

func TestRecordingURLErrorsAbsorbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	assert.Equal(t, "", c.RecordingURL(context.Background(), "c1"))
}

func TestRecordingURLSkippedWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("", srv.URL)
	assert.False(t, c.Configured())
	assert.Equal(t, "", c.RecordingURL(context.Background(), "c1"))
	assert.False(t, called)
}

func TestCreateConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{"conversation_id": "c9", "conversation_url": "https://tavus.example.com/c9"}`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	resp, err := c.CreateConversation(context.Background(), map[string]any{"persona_id": "p1"})
	require.NoError(t, err)
	assert.Equal(t, "c9", resp["conversation_id"])
}

func TestCreateConversationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid persona"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	_, err := c.CreateConversation(context.Background(), map[string]any{})
	assert.Error(t, err)
}

func TestEndConversation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/c1/end", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL)
	assert.NoError(t, c.EndConversation(context.Background(), "c1"))
}

func TestEndConversationUnconfigured(t *testing.T) {
	c := New("", "http://unused.example.com")
	assert.Error(t, c.EndConversation(context.Background(), "c1"))
}
