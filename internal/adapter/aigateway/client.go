// Package aigateway talks to an OpenAI-compatible chat-completions endpoint
// to generate structured journal insights and follow-up chat replies. It
// classifies remote failures into a small error taxonomy and never retries:
// the user re-triggers generation manually.
package aigateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	defaultModel   = "google/gemini-2.5-flash"
)

// Config holds the gateway connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is the insight generation gateway. It makes no persistence
// decisions: callers store the returned payloads themselves.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client. An empty API key is allowed: every call then fails
// with ErrNotConfigured so the rest of the app keeps working.
func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "aigateway"),
	}
}

// GenerateInsight submits the phase context and returns both the raw JSON
// payload (for storage) and the parsed insight. A reply that is not valid
// JSON after fence stripping fails with ErrBadResponse.
func (c *Client) GenerateInsight(ctx context.Context, req InsightRequest) (json.RawMessage, *domain.Insight, error) {
	prompt, err := buildInsightPrompt(req)
	if err != nil {
		return nil, nil, err
	}

	text, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: insightSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, nil, err
	}

	cleaned := stripFences(text)

	var insight domain.Insight
	if err := json.Unmarshal([]byte(cleaned), &insight); err != nil {
		c.log.WarnContext(ctx, "insight reply is not valid JSON",
			slog.String("phase", string(req.Phase)),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}

	return json.RawMessage(cleaned), &insight, nil
}

// FollowUp answers one follow-up question about an already generated
// insight, given the conversation so far. Returns plain text.
func (c *Client) FollowUp(ctx context.Context, req FollowUpRequest) (string, error) {
	system, err := buildFollowUpSystemPrompt(req)
	if err != nil {
		return "", err
	}

	messages := make([]chatMessage, 0, len(req.History)+2)
	messages = append(messages, chatMessage{Role: "system", Content: system})
	for _, m := range req.History {
		role := "user"
		if m.Role == domain.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: m.Text})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Question})

	text, err := c.complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete executes one chat-completions call and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.DebugContext(ctx, "chat completion request", slog.String("model", c.model), slog.Int("messages", len(messages)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrConnection, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %s", ErrConnection, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadResponse, err)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}

// classifyStatus maps provider HTTP statuses onto the gateway taxonomy.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized:
		return ErrNotConfigured
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusPaymentRequired:
		return ErrQuotaExhausted
	default:
		return fmt.Errorf("%w: status %d", ErrBadResponse, status)
	}
}

// stripFences removes a surrounding Markdown code fence (``` or ```json)
// from a model reply. Replies without fences pass through unchanged.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the language hint line ("json", "JSON", or empty).
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
