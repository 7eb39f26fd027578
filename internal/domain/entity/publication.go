// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Publication, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// Publication represents one bibliographic entry fetched from the
// literature service. The ID is assigned by the origin service and is
// the only field with cross-run significance: it is what the ledger
// tracks. Title, abstract and the arXiv eprint identifier are the first
// entries of possibly multi-valued metadata lists; any of them may be
// empty when the origin record does not carry them.
type Publication struct {
	ID            int64
	Title         string
	Abstract      string
	ArxivEprint   string
	DocumentURL   string // derived from ArxivEprint; empty when no eprint exists
	CitationCount int
	PageCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasDocument reports whether the publication carries a derivable
// document URL and can therefore be enriched.
func (p *Publication) HasDocument() bool {
	return p.DocumentURL != ""
}

// Review holds the AI-generated artifacts for one publication.
// Either field may be empty when the corresponding model call failed;
// an empty artifact is a recorded absence, not an error.
type Review struct {
	Summary    string
	Suggestion string
}

// EnrichedPublication pairs a publication with its own review artifacts.
// Keeping the artifacts on the record (rather than in loop-scoped
// variables) guarantees every notification renders the enrichment that
// belongs to that publication.
type EnrichedPublication struct {
	Publication *Publication
	Review      Review
}

// Validate checks that the publication satisfies the minimal invariants
// required by the pipeline. Only the ID is correctness-bearing; all
// other fields are informational.
func (p *Publication) Validate() error {
	if p.ID <= 0 {
		return &ValidationError{Field: "id", Message: "publication id must be positive"}
	}
	return nil
}
