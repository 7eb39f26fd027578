// Package notifier delivers per-publication notification emails over an
// authenticated SMTP session. It also provides a no-op implementation
// for runs where delivery is disabled.
package notifier

import (
	"context"

	"pubwatch/internal/domain/entity"
)

// Notifier sends one email per enriched publication.
//
// The whole batch shares a single mail session: implementations dial
// and authenticate once, send each message in turn, and close the
// session in all cases. A dial or authentication failure aborts the
// entire notification phase with zero messages sent; a failure on an
// individual message is logged and the remaining messages are still
// attempted.
type Notifier interface {
	// NotifyPublications sends one message per publication and
	// returns how many were accepted by the server.
	NotifyPublications(ctx context.Context, pubs []*entity.EnrichedPublication) (int, error)
}
