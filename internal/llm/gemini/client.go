package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"hireprompt-backend/internal/llm"
	"hireprompt-backend/internal/shared/telemetry"
)

const defaultModel = "gemini-2.5-flash"

// Client implements llm.Client on Google Gemini through langchaingo.
type Client struct {
	model   llms.Model
	name    string
	timeout time.Duration
}

// NewClient constructs a Gemini-backed client.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	m, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return newWithModel(m, model, timeout), nil
}

func newWithModel(m llms.Model, name string, timeout time.Duration) *Client {
	return &Client{model: m, name: name, timeout: timeout}
}

func (c *Client) Provider() string { return "gemini" }

func (c *Client) Model() string { return c.name }

// Complete maps the request onto a single GenerateContent call.
func (c *Client) Complete(ctx context.Context, in llm.Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content := make([]llms.MessageContent, 0, len(in.Messages))
	for _, m := range in.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == llm.RoleSystem {
			role = llms.ChatMessageTypeSystem
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	var opts []llms.CallOption
	if in.JSON {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := c.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini request timeout: %w: %w", llm.ErrTimeout, err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini response missing choices: %w", llm.ErrEmptyResponse)
	}

	out := strings.TrimSpace(resp.Choices[0].Content)
	if out == "" {
		return "", fmt.Errorf("gemini response empty content: %w", llm.ErrEmptyResponse)
	}
	telemetry.Debug("llm.response", map[string]any{
		"provider":    "gemini",
		"model":       c.name,
		"stop_reason": resp.Choices[0].StopReason,
	})
	return out, nil
}

var _ llm.Client = (*Client)(nil)
