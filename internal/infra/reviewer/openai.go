package reviewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"pubwatch/internal/domain/entity"
)

// maxPromptChars caps how much extracted text is sent per call.
// Roughly 100k characters keeps a full paper within the context window
// of the default model.
const maxPromptChars = 100000

// OpenAI reviews publications through OpenAI's chat completion API.
// The API takes text, not PDFs, so this backend works from the plain
// text extracted at document-fetch time.
type OpenAI struct {
	client          *openai.Client
	config          Config
	metricsRecorder ReviewMetricsRecorder
}

// NewOpenAI creates an OpenAI reviewer with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	config := DefaultOpenAIConfig()

	slog.Info("Initialized OpenAI reviewer",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		config:          config,
		metricsRecorder: NewPrometheusReviewMetrics(),
	}
}

// Summarize generates the layperson summary for the document.
func (o *OpenAI) Summarize(ctx context.Context, doc *entity.Document) (string, error) {
	return o.generate(ctx, doc, "summary", SummaryPrompt)
}

// DraftSuggestions generates the improvement-suggestion email draft.
func (o *OpenAI) DraftSuggestions(ctx context.Context, doc *entity.Document) (string, error) {
	return o.generate(ctx, doc, "suggestion", SuggestionPrompt)
}

func (o *OpenAI) generate(ctx context.Context, doc *entity.Document, artifact, prompt string) (string, error) {
	if doc.Text == "" {
		// Image-only or malformed PDFs have nothing to send here.
		return "", fmt.Errorf("document %s has no extractable text", doc.URL)
	}

	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	text := doc.Text
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
		slog.Warn("document text truncated for openai api",
			slog.String("document_url", doc.URL),
			slog.Int("original_chars", len(doc.Text)),
			slog.Int("truncated_chars", maxPromptChars))
	}

	requestID := uuid.New().String()
	slog.InfoContext(ctx, "Starting review generation",
		slog.String("request_id", requestID),
		slog.String("artifact", artifact),
		slog.String("document_url", doc.URL),
		slog.Int("input_chars", len(text)))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt + "\n\n" + text,
			},
		},
	})
	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(duration)

	if err != nil {
		o.metricsRecorder.RecordReview(artifact, false)
		slog.ErrorContext(ctx, "Review generation failed",
			slog.String("request_id", requestID),
			slog.String("artifact", artifact),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		o.metricsRecorder.RecordReview(artifact, false)
		return "", fmt.Errorf("openai api returned no choices")
	}

	result := resp.Choices[0].Message.Content
	o.metricsRecorder.RecordReview(artifact, true)
	slog.InfoContext(ctx, "Review generation completed",
		slog.String("request_id", requestID),
		slog.String("artifact", artifact),
		slog.Int("output_chars", len(result)),
		slog.Duration("duration", duration))

	return result, nil
}
