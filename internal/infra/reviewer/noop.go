package reviewer

import (
	"context"

	"pubwatch/internal/domain/entity"
)

// NoOp is a reviewer that returns fixed placeholder artifacts. It is
// used for development runs where spending model tokens is undesirable.
type NoOp struct{}

// NewNoOp creates a new NoOp reviewer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns a fixed placeholder summary.
func (n *NoOp) Summarize(_ context.Context, doc *entity.Document) (string, error) {
	return "Summary generation is disabled. Document: " + doc.URL, nil
}

// DraftSuggestions returns a fixed placeholder draft.
func (n *NoOp) DraftSuggestions(_ context.Context, doc *entity.Document) (string, error) {
	return "Suggestion drafting is disabled. Document: " + doc.URL, nil
}
