// Package review implements the publication watch pipeline: fetch the
// author's publication list, filter out everything the ledger has seen,
// enrich each new publication with AI review artifacts, notify, and
// persist the grown ledger.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pubwatch/internal/domain/entity"
	"pubwatch/internal/repository"
)

// PublicationFetcher is an interface for querying the literature
// service for an author's publication list.
type PublicationFetcher interface {
	FetchByAuthor(ctx context.Context, authorID string) ([]*entity.Publication, error)
}

// DocumentFetcher is an interface for downloading one publication
// document and preparing it for review.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*entity.Document, error)
}

// Reviewer is an interface for generating the two AI review artifacts.
// The two calls are independent; a failure in one does not imply a
// failure in the other.
type Reviewer interface {
	Summarize(ctx context.Context, doc *entity.Document) (string, error)
	DraftSuggestions(ctx context.Context, doc *entity.Document) (string, error)
}

// Notifier sends one email per enriched publication over a single mail
// session.
type Notifier interface {
	NotifyPublications(ctx context.Context, pubs []*entity.EnrichedPublication) (int, error)
}

// Service orchestrates one watch pass. All steps run sequentially; the
// only cross-run state is the ledger, which is read once at the start
// and written once at the end.
type Service struct {
	Ledger    repository.LedgerRepository
	Fetcher   PublicationFetcher
	Documents DocumentFetcher
	Reviewer  Reviewer
	Notifier  Notifier
	AuthorID  string
}

// NewService creates a review Service with the provided dependencies.
func NewService(
	ledger repository.LedgerRepository,
	fetcher PublicationFetcher,
	documents DocumentFetcher,
	reviewer Reviewer,
	notifier Notifier,
	authorID string,
) Service {
	return Service{
		Ledger:    ledger,
		Fetcher:   fetcher,
		Documents: documents,
		Reviewer:  reviewer,
		Notifier:  notifier,
		AuthorID:  authorID,
	}
}

// RunStats contains statistics about one watch pass.
type RunStats struct {
	Fetched          int
	Known            int
	New              int
	EnrichmentErrors int
	MailsSent        int
	LedgerSize       int
	Duration         time.Duration
}

// Run executes one watch pass.
//
// Failure policy, in pipeline order: a ledger load or literature fetch
// error is fatal and leaves no side effects. Per-publication enrichment
// failures (no document, fetch error, model error) are isolated: the
// artifact is recorded absent and the pass continues. A notification
// session failure aborts delivery for the whole batch but the ledger is
// still persisted, because every new publication has been processed.
// The ledger write is the single state mutation and happens exactly
// once, at the end.
func (s *Service) Run(ctx context.Context) (*RunStats, error) {
	logger := slog.Default()
	start := time.Now()
	stats := &RunStats{}

	known, err := s.Ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	stats.Known = len(known)

	fetched, err := s.Fetcher.FetchByAuthor(ctx, s.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("fetch publications: %w", err)
	}
	stats.Fetched = len(fetched)

	fresh := Novelty(fetched, known)
	stats.New = len(fresh)
	if len(fresh) == 0 {
		stats.LedgerSize = len(known)
		stats.Duration = time.Since(start)
		logger.Info("no new publications, nothing to do",
			slog.String("author_id", s.AuthorID),
			slog.Int("fetched", stats.Fetched),
			slog.Int("known", stats.Known))
		return stats, nil
	}

	enriched := make([]*entity.EnrichedPublication, 0, len(fresh))
	for _, pub := range fresh {
		ep, err := s.enrich(ctx, pub, stats)
		if err != nil {
			// Only context cancellation escapes the enrichment loop.
			return stats, err
		}
		enriched = append(enriched, ep)
	}

	sent, err := s.Notifier.NotifyPublications(ctx, enriched)
	stats.MailsSent = sent
	if err != nil {
		logger.Error("notification phase failed",
			slog.Int("publications", len(enriched)),
			slog.Any("error", err))
	}

	updated := appendIDs(known, fresh)
	if err := s.Ledger.Save(ctx, updated); err != nil {
		return stats, fmt.Errorf("persist ledger: %w", err)
	}
	stats.LedgerSize = len(updated)

	stats.Duration = time.Since(start)
	logger.Info("watch pass completed",
		slog.String("author_id", s.AuthorID),
		slog.Int("fetched", stats.Fetched),
		slog.Int("known", stats.Known),
		slog.Int("new", stats.New),
		slog.Int("enrichment_errors", stats.EnrichmentErrors),
		slog.Int("mails_sent", stats.MailsSent),
		slog.Int("ledger_size", stats.LedgerSize),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// enrich produces the review artifacts for one publication. Every
// failure short of context cancellation is absorbed here: the affected
// artifact stays empty and the error count grows, but the pass goes on.
func (s *Service) enrich(ctx context.Context, pub *entity.Publication, stats *RunStats) (*entity.EnrichedPublication, error) {
	logger := slog.Default()
	ep := &entity.EnrichedPublication{Publication: pub}

	if !pub.HasDocument() {
		stats.EnrichmentErrors++
		logger.Warn("publication has no document, skipping enrichment",
			slog.Int64("publication_id", pub.ID),
			slog.String("title", pub.Title))
		return ep, nil
	}

	doc, err := s.Documents.Fetch(ctx, pub.DocumentURL)
	if err != nil {
		if isContextError(err) {
			return nil, err
		}
		stats.EnrichmentErrors++
		logger.Warn("document fetch failed, skipping enrichment",
			slog.Int64("publication_id", pub.ID),
			slog.String("document_url", pub.DocumentURL),
			slog.Any("error", err))
		return ep, nil
	}

	if summary, err := s.Reviewer.Summarize(ctx, doc); err != nil {
		if isContextError(err) {
			return nil, err
		}
		stats.EnrichmentErrors++
		logger.Warn("summary generation failed",
			slog.Int64("publication_id", pub.ID),
			slog.Any("error", err))
	} else {
		ep.Review.Summary = summary
	}

	if suggestion, err := s.Reviewer.DraftSuggestions(ctx, doc); err != nil {
		if isContextError(err) {
			return nil, err
		}
		stats.EnrichmentErrors++
		logger.Warn("suggestion drafting failed",
			slog.Int64("publication_id", pub.ID),
			slog.Any("error", err))
	} else {
		ep.Review.Suggestion = suggestion
	}

	return ep, nil
}

// Novelty returns the fetched publications whose ids are absent from
// the known set. The comparison is purely numeric and order-independent,
// and the result preserves fetch order. Repeated ids within one fetch
// result are reported once, keeping the exactly-once ledger invariant.
func Novelty(fetched []*entity.Publication, known []int64) []*entity.Publication {
	seen := make(map[int64]struct{}, len(known))
	for _, id := range known {
		seen[id] = struct{}{}
	}

	fresh := make([]*entity.Publication, 0)
	for _, pub := range fetched {
		if _, ok := seen[pub.ID]; ok {
			continue
		}
		seen[pub.ID] = struct{}{}
		fresh = append(fresh, pub)
	}
	return fresh
}

// appendIDs grows the known id list with the ids of the processed
// publications, preserving the original order.
func appendIDs(known []int64, processed []*entity.Publication) []int64 {
	updated := make([]int64, 0, len(known)+len(processed))
	updated = append(updated, known...)
	for _, pub := range processed {
		updated = append(updated, pub.ID)
	}
	return updated
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
