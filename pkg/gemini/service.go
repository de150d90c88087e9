package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrNoText = errors.New("gemini returned no text")

// Client owns the Gemini API connection. One client serves every model
// handle created from it and must be closed on shutdown.
type Client struct {
	client *genai.Client
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required for Gemini provider")
	}
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Model returns a generator bound to one model name.
func (c *Client) Model(name string) *Model {
	return &Model{name: name, model: c.client.GenerativeModel(name)}
}

// Model generates text with a single Gemini model.
type Model struct {
	name  string
	model *genai.GenerativeModel
}

func (m *Model) Name() string {
	return "gemini/" + m.name
}

// Generate sends prompt and concatenates the text parts of the first candidate.
// API errors are returned unchanged so callers can inspect status codes.
func (m *Model) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			return s
		}
	}
	return ""
}
