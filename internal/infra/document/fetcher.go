// Package document fetches publication documents (arXiv PDFs) and
// prepares them for AI review: raw bytes are base64-encoded for model
// transport and a plain-text rendition is extracted for backends that
// cannot ingest PDFs directly.
package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"pubwatch/internal/domain/entity"
)

// maxDocumentBytes caps how much of a document is read. arXiv papers
// are a few MB at most; anything larger will not fit a single model
// call anyway.
const maxDocumentBytes = 32 << 20

// Fetcher downloads documents over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a document fetcher. A nil httpClient gets a
// default client with a 60 second timeout; arXiv can be slow on large
// papers.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Fetcher{httpClient: httpClient}
}

// Fetch downloads the document at url and prepares it for review.
// An HTTP failure (transport error or non-2xx status) is returned as an
// error; callers treat that as a per-publication failure, not a fatal
// one. Text extraction failure is not an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*entity.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build document request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("document host returned %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read document body %s: %w", url, err)
	}

	doc := &entity.Document{
		URL:    url,
		Raw:    raw,
		Base64: base64.StdEncoding.EncodeToString(raw),
		Text:   extractText(raw),
	}

	slog.Debug("document fetched",
		slog.String("url", url),
		slog.Int("bytes", len(raw)),
		slog.Int("text_chars", len(doc.Text)))

	return doc, nil
}

// extractText pulls plain text out of the PDF bytes. Extraction is
// best-effort: malformed or image-only PDFs return an empty string.
func extractText(raw []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		slog.Warn("pdf text extraction failed", slog.Any("error", err))
		return ""
	}

	content, err := reader.GetPlainText()
	if err != nil {
		slog.Warn("pdf text extraction failed", slog.Any("error", err))
		return ""
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, content); err != nil {
		slog.Warn("pdf text read failed", slog.Any("error", err))
		return ""
	}
	return sb.String()
}
