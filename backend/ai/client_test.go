package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBackendNoneConfigured(t *testing.T) {
	c := &Client{}
	_, err := c.SelectBackend("gpt-4o")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestSelectBackendPolicy(t *testing.T) {
	primary := &Backend{Name: "openai"}
	secondary := &Backend{Name: "openrouter"}

	tests := []struct {
		name   string
		client *Client
		model  string
		want   *Backend
	}{
		{"native model prefers primary", &Client{Primary: primary, Secondary: secondary}, "gpt-4o", primary},
		{"namespaced model prefers secondary", &Client{Primary: primary, Secondary: secondary}, "google/gemini-2.0-flash-001", secondary},
		{"only secondary configured", &Client{Secondary: secondary}, "gpt-4o", secondary},
		{"only primary configured, namespaced model falls back", &Client{Primary: primary}, "google/gemini-2.0-flash-001", primary},
		{"only primary configured, native model", &Client{Primary: primary}, "gpt-4o", primary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.client.SelectBackend(tt.model)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

// fakeCompletionServer mimics the chat-completion endpoint.
func fakeCompletionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "boom", "type": "server_error"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestCompleteSuccess(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, "week 1: read the book")
	defer srv.Close()

	c := &Client{
		Secondary: NewOpenRouterBackend("test-key", srv.URL),
		Timeout:   5 * time.Second,
	}

	got, err := c.Complete(context.Background(), Request{
		Model:       "google/gemini-2.0-flash-001",
		System:      "system",
		User:        "user",
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "week 1: read the book", got)
}

func TestCompleteProviderFailure(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusInternalServerError, "")
	defer srv.Close()

	c := &Client{Secondary: NewOpenRouterBackend("test-key", srv.URL)}

	_, err := c.Complete(context.Background(), Request{Model: "google/gemini-2.0-flash-001", User: "user"})
	require.Error(t, err)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "openrouter", backendErr.Backend)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := &Client{Secondary: NewOpenRouterBackend("test-key", srv.URL)}

	_, err := c.Complete(context.Background(), Request{Model: "x/y", User: "user"})
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Contains(t, backendErr.Error(), "no choices")
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{
		Secondary: NewOpenRouterBackend("test-key", srv.URL),
		Timeout:   20 * time.Millisecond,
	}

	_, err := c.Complete(context.Background(), Request{Model: "x/y", User: "user"})
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
}

func TestCompleteNoBackend(t *testing.T) {
	c := &Client{}
	_, err := c.Complete(context.Background(), Request{Model: "gpt-4o", User: "user"})
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestOpenRouterHeaders(t *testing.T) {
	var gotReferer, gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	c := &Client{Secondary: NewOpenRouterBackend("test-key", srv.URL)}
	_, err := c.Complete(context.Background(), Request{Model: "x/y", User: "user"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", gotReferer)
	assert.Equal(t, "Study Planner", gotTitle)
}
