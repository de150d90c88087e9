package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	summaryusecase "curalink-backend/internal/summary/usecase"
	"curalink-backend/pkg/ai"

	"go.uber.org/zap"
)

const (
	DefaultParseTimeout = 10 * time.Second

	SummaryFallback = "This trial investigates a new therapy. Eligible patients may benefit under medical supervision."
)

var (
	unavailableCondition = ParsedCondition{Conditions: []string{"Unknown Condition"}, Location: "Unknown Location"}
	unparsedCondition    = ParsedCondition{Conditions: []string{"General Health Condition"}, Location: "Not specified"}
)

// ParsedCondition is what the model extracted from a patient's free text
type ParsedCondition struct {
	Conditions []string `json:"conditions"`
	Location   string   `json:"location"`
}

// ChatMessage is one turn of the landing page chat
type ChatMessage struct {
	Sender string `json:"sender"` // "user" or "ai"
	Text   string `json:"text"`
}

type AssistantUsecase interface {
	// ParseCondition never fails; generation or parse problems yield fixed placeholders.
	ParseCondition(ctx context.Context, text string) ParsedCondition
	// Summarize never fails; it falls back to SummaryFallback.
	Summarize(ctx context.Context, text string) string
	Chat(ctx context.Context, message string, history []ChatMessage) (string, error)
}

type assistantUsecase struct {
	generator    ai.TextGenerator
	summarizer   summaryusecase.Summarizer
	parseTimeout time.Duration
	logger       *zap.Logger
}

func NewAssistantUsecase(generator ai.TextGenerator, summarizer summaryusecase.Summarizer, logger *zap.Logger) AssistantUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assistantUsecase{
		generator:    generator,
		summarizer:   summarizer,
		parseTimeout: DefaultParseTimeout,
		logger:       logger.Named("assistant"),
	}
}

func (u *assistantUsecase) ParseCondition(ctx context.Context, text string) ParsedCondition {
	prompt := fmt.Sprintf(`Extract the medical conditions and location from this text.
Return *only* a valid JSON object in this exact format:
{ "conditions": ["condition1", "condition2"], "location": "city, country" }

Text: "%s"`, text)

	callCtx, cancel := context.WithTimeout(ctx, u.parseTimeout)
	defer cancel()
	out, err := u.generator.Generate(callCtx, prompt)
	if err != nil {
		u.logger.Warn("condition extraction failed", zap.Error(err))
		return unavailableCondition
	}

	parsed, err := parseConditionJSON(out)
	if err != nil {
		u.logger.Warn("condition extraction returned invalid JSON", zap.String("output", out), zap.Error(err))
		return unparsedCondition
	}
	return parsed
}

func parseConditionJSON(out string) (ParsedCondition, error) {
	clean := strings.ReplaceAll(out, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var parsed ParsedCondition
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return ParsedCondition{}, err
	}
	if parsed.Conditions == nil {
		parsed.Conditions = []string{}
	}
	return parsed, nil
}

func (u *assistantUsecase) Summarize(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(`You are an expert medical summarizer for patients.
Summarize the following clinical trial information in 3 simple bullet points.
Focus on what the trial is for and who can participate.
Use plain, easy-to-understand language.

Text: "%s"`, text)

	summary, err := u.summarizer.Summarize(ctx, prompt)
	if err != nil {
		u.logger.Warn("summary failed, using fallback", zap.Error(err))
		return SummaryFallback
	}
	return summary
}

func (u *assistantUsecase) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	var transcript strings.Builder
	for _, m := range history {
		speaker := "AI"
		if m.Sender == "user" {
			speaker = "User"
		}
		fmt.Fprintf(&transcript, "%s: %s\n", speaker, m.Text)
	}

	prompt := fmt.Sprintf(`You are CuraLink AI, a helpful assistant on the landing page.
A user is asking a question. Keep your answer concise (2-3 sentences).

Here is the chat history so far:
%s
New User Message: %s
AI:`, transcript.String(), message)

	reply, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}
	return reply, nil
}
