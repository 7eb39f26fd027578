// Package fetcher implements the client for the INSPIRE-HEP literature
// API and the mapping from its nested metadata shape to domain
// publications.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"pubwatch/internal/domain/entity"
)

const (
	// DefaultBaseURL is the INSPIRE-HEP literature search endpoint.
	DefaultBaseURL = "https://inspirehep.net/api/literature"

	// DefaultPageSize matches the single-page query the watcher issues:
	// most-recent-first, one page, 250 records.
	DefaultPageSize = 250

	// defaultUserAgent mirrors a desktop browser; the API answers
	// plain-client requests less reliably.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// requestsPerSecond is a politeness cap on search requests.
	requestsPerSecond = 2.0
)

// Config holds configuration for the INSPIRE client.
type Config struct {
	// BaseURL is the literature search endpoint.
	BaseURL string

	// PageSize is the number of records requested per query.
	PageSize int

	// Timeout is the HTTP timeout for one search request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the production configuration for the client.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		PageSize:  DefaultPageSize,
		Timeout:   30 * time.Second,
		UserAgent: defaultUserAgent,
	}
}

// InspireClient fetches an author's publication list from INSPIRE-HEP.
type InspireClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cfg        Config
}

// NewInspireClient creates a rate-limited INSPIRE client. A nil
// httpClient gets a default client with the configured timeout.
func NewInspireClient(cfg Config, httpClient *http.Client) *InspireClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &InspireClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		cfg:        cfg,
	}
}

// literatureResponse is the top-level shape of an INSPIRE search result.
type literatureResponse struct {
	Hits struct {
		Hits []hit `json:"hits"`
	} `json:"hits"`
}

// hit is one search result. The id arrives as a string in current API
// responses but has drifted between representations before, so it is
// decoded loosely and coerced numerically. Metadata stays untyped: its
// list-of-object fields are probed by the extraction helpers, which
// tolerate any shape.
type hit struct {
	ID       any            `json:"id"`
	Created  string         `json:"created"`
	Updated  string         `json:"updated"`
	Metadata map[string]any `json:"metadata"`
}

// FetchByAuthor issues a single most-recent-first paginated query for
// the author's publications and returns the decoded records. A
// transport failure or a non-2xx response is fatal for the run, so it
// is returned as an error with no partial result.
func (c *InspireClient) FetchByAuthor(ctx context.Context, authorID string) ([]*entity.Publication, error) {
	if authorID == "" {
		return nil, fmt.Errorf("%w: author id is empty", entity.ErrInvalidInput)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("sort", "mostrecent")
	query.Set("size", strconv.Itoa(c.cfg.PageSize))
	query.Set("page", "1")
	query.Set("q", "a "+authorID)
	requestURL := c.cfg.BaseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build literature request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch literature for %s: %w", authorID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the diagnostic, then give up.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("literature api returned %d for %s: %s",
			resp.StatusCode, authorID, string(body))
	}

	var decoded literatureResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode literature response: %w", err)
	}

	pubs := make([]*entity.Publication, 0, len(decoded.Hits.Hits))
	for _, h := range decoded.Hits.Hits {
		pub, ok := mapHit(h)
		if !ok {
			slog.Warn("skipping hit without a numeric id",
				slog.Any("raw_id", h.ID))
			continue
		}
		pubs = append(pubs, pub)
	}

	slog.Info("literature fetch completed",
		slog.String("author_id", authorID),
		slog.Int("hits", len(decoded.Hits.Hits)),
		slog.Int("publications", len(pubs)),
		slog.Duration("duration", time.Since(start)))

	return pubs, nil
}

// mapHit flattens one search hit into a Publication. Every metadata
// field except the id is optional; shape mismatches yield absent values
// rather than errors.
func mapHit(h hit) (*entity.Publication, bool) {
	id, ok := coerceID(h.ID)
	if !ok {
		return nil, false
	}

	pub := &entity.Publication{
		ID:        id,
		CreatedAt: parseTimestamp(h.Created),
		UpdatedAt: parseTimestamp(h.Updated),
	}

	if title, ok := firstTitle(h.Metadata["titles"]); ok {
		pub.Title = title
	}
	if abstract, ok := firstValue(h.Metadata["abstracts"]); ok {
		pub.Abstract = abstract
	}
	if eprint, ok := firstValue(h.Metadata["arxiv_eprints"]); ok {
		pub.ArxivEprint = eprint
		pub.DocumentURL = DocumentURL(eprint)
	}
	if n, ok := intField(h.Metadata["citation_count"]); ok {
		pub.CitationCount = n
	}
	if n, ok := intField(h.Metadata["number_of_pages"]); ok {
		pub.PageCount = n
	}

	return pub, true
}

// coerceID converts the loosely-typed id field to int64. The API and
// the ledger have historically disagreed about string versus integer
// ids; comparing anything but the numeric value produces false "new"
// detections, so every representation funnels through here.
func coerceID(v any) (int64, bool) {
	switch id := v.(type) {
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case float64:
		if id != float64(int64(id)) {
			return 0, false
		}
		return int64(id), true
	case json.Number:
		parsed, err := id.Int64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func intField(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
