package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubwatch/internal/domain/entity"
)

const literatureFixture = `{
  "hits": {
    "hits": [
      {
        "id": "2157799",
        "created": "2024-03-01T09:30:00+00:00",
        "updated": "2024-03-02T10:00:00+00:00",
        "metadata": {
          "titles": [{"title": "Parton distributions from the lattice"}],
          "abstracts": [{"value": "We compute parton distributions."}],
          "arxiv_eprints": [{"value": "2403.01234"}],
          "citation_count": 12,
          "number_of_pages": 34
        }
      },
      {
        "id": "2157800",
        "metadata": {
          "titles": [{"title": "Proceedings contribution"}]
        }
      },
      {
        "id": "not-numeric",
        "metadata": {}
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *InspireClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = server.URL
	return NewInspireClient(cfg, server.Client())
}

func TestFetchByAuthor(t *testing.T) {
	var gotQuery, gotUserAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(literatureFixture))
	})

	pubs, err := client.FetchByAuthor(context.Background(), "Joseph.Karpie.1")
	require.NoError(t, err)

	assert.Equal(t, "a Joseph.Karpie.1", gotQuery)
	assert.NotEmpty(t, gotUserAgent)

	// The hit without a numeric id is dropped, the rest survive.
	require.Len(t, pubs, 2)

	want := &entity.Publication{
		ID:            2157799,
		Title:         "Parton distributions from the lattice",
		Abstract:      "We compute parton distributions.",
		ArxivEprint:   "2403.01234",
		DocumentURL:   "https://arxiv.org/pdf/2403.01234",
		CitationCount: 12,
		PageCount:     34,
		CreatedAt:     time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, pubs[0]); diff != "" {
		t.Errorf("Mapped publication mismatch (-want +got):\n%s", diff)
	}

	// The second hit has no abstract, eprint or counts; all absent.
	second := pubs[1]
	assert.Equal(t, int64(2157800), second.ID)
	assert.Equal(t, "Proceedings contribution", second.Title)
	assert.Empty(t, second.DocumentURL)
	assert.False(t, second.HasDocument())
}

func TestFetchByAuthorServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})

	_, err := client.FetchByAuthor(context.Background(), "Joseph.Karpie.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchByAuthorEmptyAuthor(t *testing.T) {
	client := NewInspireClient(DefaultConfig(), &http.Client{Timeout: time.Second})
	_, err := client.FetchByAuthor(context.Background(), "")
	require.Error(t, err)
}

func TestCoerceIDRepresentations(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int64
		wantOK bool
	}{
		{"string", "2157799", 2157799, true},
		{"float", float64(2157799), 2157799, true},
		{"fractional float", 101.5, 0, false},
		{"garbage string", "abc", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceID(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("coerceID(%v) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
