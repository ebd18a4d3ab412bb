package services

import (
	"context"
	"log"
)

const searchResultCount = 10

// ContentSearcher is the slice of the GroundX client the search gateway needs.
type ContentSearcher interface {
	SearchContent(ctx context.Context, bucketID int, query string, n int) (string, error)
}

// SearchService retrieves knowledge-base context for a query.
type SearchService interface {
	// SearchContext returns the aggregated context text for the query, or an
	// empty string when nothing matched or the backend failed. Backend errors
	// are never propagated: a search failure degrades to "no context".
	SearchContext(ctx context.Context, query string) string
	// Probe runs a minimal 1-result search to verify backend connectivity.
	Probe(ctx context.Context) error
}

type searchServiceImpl struct {
	searcher ContentSearcher
	bucketID int
}

// NewSearchService creates a search gateway scoped to one bucket.
func NewSearchService(searcher ContentSearcher, bucketID int) SearchService {
	return &searchServiceImpl{searcher: searcher, bucketID: bucketID}
}

func (s *searchServiceImpl) SearchContext(ctx context.Context, query string) string {
	log.Printf("SERVICE: Searching documents with query: '%s'", query)

	text, err := s.searcher.SearchContent(ctx, s.bucketID, query, searchResultCount)
	if err != nil {
		log.Printf("SERVICE: Error searching documents: %v", err)
		return ""
	}

	log.Printf("SERVICE: Search returned %d characters", len(text))
	return text
}

func (s *searchServiceImpl) Probe(ctx context.Context) error {
	_, err := s.searcher.SearchContent(ctx, s.bucketID, "test", 1)
	return err
}
