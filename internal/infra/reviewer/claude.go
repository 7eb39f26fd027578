package reviewer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"pubwatch/internal/domain/entity"
)

// Claude reviews publications through Anthropic's Claude API. The PDF
// is passed to the model as a base64 document block, so no local text
// extraction is needed.
type Claude struct {
	client          anthropic.Client
	config          Config
	metricsRecorder ReviewMetricsRecorder
}

// NewClaude creates a Claude reviewer with the given API key.
func NewClaude(apiKey string) *Claude {
	config := DefaultClaudeConfig()

	slog.Info("Initialized Claude reviewer",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		config:          config,
		metricsRecorder: NewPrometheusReviewMetrics(),
	}
}

// Summarize generates the layperson summary for the document.
func (c *Claude) Summarize(ctx context.Context, doc *entity.Document) (string, error) {
	return c.generate(ctx, doc, "summary", SummaryPrompt)
}

// DraftSuggestions generates the improvement-suggestion email draft.
func (c *Claude) DraftSuggestions(ctx context.Context, doc *entity.Document) (string, error) {
	return c.generate(ctx, doc, "suggestion", SuggestionPrompt)
}

// generate performs one model call with the document payload and the
// given instruction prompt.
func (c *Claude) generate(ctx context.Context, doc *entity.Document, artifact, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	requestID := uuid.New().String()
	slog.InfoContext(ctx, "Starting review generation",
		slog.String("request_id", requestID),
		slog.String("artifact", artifact),
		slog.String("document_url", doc.URL),
		slog.Int("document_bytes", len(doc.Raw)))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: doc.Base64,
				}),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(duration)

	if err != nil {
		c.metricsRecorder.RecordReview(artifact, false)
		slog.ErrorContext(ctx, "Review generation failed",
			slog.String("request_id", requestID),
			slog.String("artifact", artifact),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		c.metricsRecorder.RecordReview(artifact, false)
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordReview(artifact, false)
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	c.metricsRecorder.RecordReview(artifact, true)
	slog.InfoContext(ctx, "Review generation completed",
		slog.String("request_id", requestID),
		slog.String("artifact", artifact),
		slog.Int("output_chars", len(textBlock.Text)),
		slog.Duration("duration", duration))

	return textBlock.Text, nil
}
