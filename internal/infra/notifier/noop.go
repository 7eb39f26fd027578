package notifier

import (
	"context"
	"log/slog"

	"pubwatch/internal/domain/entity"
)

// NoOpNotifier logs what would have been sent without opening a mail
// session. It is used when delivery is disabled (dry runs).
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyPublications logs each publication and reports all of them as sent.
func (n *NoOpNotifier) NotifyPublications(_ context.Context, pubs []*entity.EnrichedPublication) (int, error) {
	for _, ep := range pubs {
		slog.Info("notification suppressed (delivery disabled)",
			slog.Int64("publication_id", ep.Publication.ID),
			slog.String("subject", Subject(ep.Publication)))
	}
	return len(pubs), nil
}
