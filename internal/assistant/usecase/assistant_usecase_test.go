package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Name() string { return "test/model" }

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

type summarizerFunc func(ctx context.Context, prompt string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestParseCondition_FencedJSON(t *testing.T) {
	gen := &scriptedGenerator{reply: "```json\n{ \"conditions\": [\"asthma\", \"eczema\"], \"location\": \"Lyon, France\" }\n```"}
	uc := NewAssistantUsecase(gen, nil, nil)

	got := uc.ParseCondition(context.Background(), "I have asthma and eczema and live in Lyon")
	require.Equal(t, []string{"asthma", "eczema"}, got.Conditions)
	require.Equal(t, "Lyon, France", got.Location)
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], `Text: "I have asthma and eczema and live in Lyon"`)
}

func TestParseCondition_Fallbacks(t *testing.T) {
	t.Run("generation error", func(t *testing.T) {
		uc := NewAssistantUsecase(&scriptedGenerator{err: errors.New("quota exceeded")}, nil, nil)
		got := uc.ParseCondition(context.Background(), "anything")
		require.Equal(t, []string{"Unknown Condition"}, got.Conditions)
		require.Equal(t, "Unknown Location", got.Location)
	})

	t.Run("not json", func(t *testing.T) {
		uc := NewAssistantUsecase(&scriptedGenerator{reply: "Sorry, I cannot help with that."}, nil, nil)
		got := uc.ParseCondition(context.Background(), "anything")
		require.Equal(t, []string{"General Health Condition"}, got.Conditions)
		require.Equal(t, "Not specified", got.Location)
	})
}

func TestSummarize(t *testing.T) {
	var seen string
	ok := summarizerFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "- point", nil
	})
	uc := NewAssistantUsecase(&scriptedGenerator{}, ok, nil)
	require.Equal(t, "- point", uc.Summarize(context.Background(), "A phase 2 trial"))
	require.True(t, strings.HasPrefix(seen, "You are an expert medical summarizer for patients."))
	require.Contains(t, seen, `Text: "A phase 2 trial"`)

	failing := summarizerFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("exhausted")
	})
	uc = NewAssistantUsecase(&scriptedGenerator{}, failing, nil)
	require.Equal(t, SummaryFallback, uc.Summarize(context.Background(), "A phase 2 trial"))
}

func TestChat_ComposesHistory(t *testing.T) {
	gen := &scriptedGenerator{reply: "CuraLink helps you find trials."}
	uc := NewAssistantUsecase(gen, nil, nil)

	reply, err := uc.Chat(context.Background(), "What is CuraLink?", []ChatMessage{
		{Sender: "user", Text: "Hi"},
		{Sender: "ai", Text: "Hello! How can I help?"},
	})
	require.NoError(t, err)
	require.Equal(t, "CuraLink helps you find trials.", reply)

	prompt := gen.prompts[0]
	require.Contains(t, prompt, "User: Hi\nAI: Hello! How can I help?\n")
	require.True(t, strings.HasSuffix(prompt, "New User Message: What is CuraLink?\nAI:"))
}

func TestChat_Error(t *testing.T) {
	cause := errors.New("provider down")
	uc := NewAssistantUsecase(&scriptedGenerator{err: cause}, nil, nil)
	_, err := uc.Chat(context.Background(), "hello", nil)
	require.ErrorIs(t, err, cause)
}
