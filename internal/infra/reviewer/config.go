// Package reviewer provides AI-powered publication review implementations.
// It includes adapters for Claude (Anthropic) and OpenAI APIs. A reviewer
// produces two independent text artifacts for one publication document:
// a layperson summary and an improvement-suggestion email draft.
package reviewer

import (
	"log/slog"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// Fixed instruction prompts. The two calls share the document payload
// but are otherwise independent; either may fail without affecting the
// other.
const (
	// SummaryPrompt asks for the layperson summary.
	SummaryPrompt = `Summarize this as if you're the author trying to explain it to a five year old, call them "little scientist."
Keep it simple, fun, and as if you're giving a crash course for someone who barely remembers anything from high school physics.`

	// SuggestionPrompt asks for the improvement-suggestion email draft.
	SuggestionPrompt = `Based on the article's content, draft an email to the author, your older brother Joseph.
Begin the email by expressing appreciation for the article, highlighting specific aspects you found insightful or engaging.
After the positive introduction, kindly offer constructive suggestions for improvement. Focus on areas such as structure, clarity,
and any missing details or explanations that could enhance understanding and accessibility of the topic. Conclude the email with a
thoughtful Albert Einstein quote, prefacing it like this: "Remember what Einstein said," Please format your response in HTML.`
)

// Config holds configuration parameters shared by the reviewer backends.
type Config struct {
	// Model is the API model identifier to use for review generation.
	Model string

	// MaxTokens is the maximum number of tokens for one API response.
	MaxTokens int

	// Timeout is the maximum duration for a single review API call.
	Timeout time.Duration
}

// DefaultClaudeConfig returns the Claude backend defaults. The model
// can be overridden via the REVIEWER_MODEL environment variable.
func DefaultClaudeConfig() Config {
	return Config{
		Model:     modelOverride(string(anthropic.ModelClaudeSonnet4_5_20250929)),
		MaxTokens: 2048,
		Timeout:   120 * time.Second,
	}
}

// DefaultOpenAIConfig returns the OpenAI backend defaults. The model
// can be overridden via the REVIEWER_MODEL environment variable.
func DefaultOpenAIConfig() Config {
	return Config{
		Model:     modelOverride("gpt-4o-mini"),
		MaxTokens: 2048,
		Timeout:   120 * time.Second,
	}
}

func modelOverride(fallback string) string {
	if model := os.Getenv("REVIEWER_MODEL"); model != "" {
		slog.Info("using reviewer model from environment",
			slog.String("model", model))
		return model
	}
	return fallback
}
