package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studyplanner/backend/config"

	"github.com/sashabaranov/go-openai"
)

// ErrNoBackend means neither provider has an API key configured.
var ErrNoBackend = errors.New("no AI backend configured")

// BackendError wraps any failure of the external chat-completion call:
// network, auth, quota, timeout, or an unusable response.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// Backend is one configured chat-completion provider.
type Backend struct {
	Name   string
	client *openai.Client
}

func NewOpenAIBackend(apiKey string) *Backend {
	return &Backend{Name: "openai", client: openai.NewClient(apiKey)}
}

// NewOpenRouterBackend targets OpenRouter's OpenAI-compatible endpoint.
func NewOpenRouterBackend(apiKey, baseURL string) *Backend {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{
		Transport: &openRouterHeaders{base: http.DefaultTransport},
	}
	return &Backend{Name: "openrouter", client: openai.NewClientWithConfig(cfg)}
}

// openRouterHeaders injects the attribution headers OpenRouter requires.
type openRouterHeaders struct {
	base http.RoundTripper
}

func (t *openRouterHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", "http://localhost:8080")
	req.Header.Set("X-Title", "Study Planner")
	return t.base.RoundTrip(req)
}

// Client holds the configured backends and the dispatch timeout. Primary is
// the native OpenAI endpoint, Secondary the routed one; either may be nil.
type Client struct {
	Primary   *Backend
	Secondary *Backend
	Timeout   time.Duration
}

func NewClient(cfg *config.Config) *Client {
	c := &Client{Timeout: cfg.AIRequestTimeout}
	if cfg.OpenAIKey != "" {
		c.Primary = NewOpenAIBackend(cfg.OpenAIKey)
	}
	if cfg.OpenRouterKey != "" {
		c.Secondary = NewOpenRouterBackend(cfg.OpenRouterKey, cfg.OpenRouterBaseURL)
	}
	return c
}

// SelectBackend picks the provider for a model identifier. Namespaced models
// ("vendor/model") are routed, so they prefer the secondary backend, as does
// a configuration with only the secondary present; otherwise the primary is
// preferred. Whichever is configured serves as the fallback.
func (c *Client) SelectBackend(model string) (*Backend, error) {
	if c.Primary == nil && c.Secondary == nil {
		return nil, ErrNoBackend
	}
	if strings.Contains(model, "/") || c.Primary == nil {
		if c.Secondary != nil {
			return c.Secondary, nil
		}
		return c.Primary, nil
	}
	return c.Primary, nil
}

type Request struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Complete performs one blocking chat-completion call against the backend
// selected for the request's model. Every failure path, including an empty
// choice list, surfaces as a *BackendError; nothing is retried.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	backend, err := c.SelectBackend(req.Model)
	if err != nil {
		return "", err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}
	if req.Temperature > 0 {
		chatReq.Temperature = req.Temperature
	}

	resp, err := backend.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", &BackendError{Backend: backend.Name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &BackendError{Backend: backend.Name, Err: errors.New("no choices returned")}
	}
	return resp.Choices[0].Message.Content, nil
}
