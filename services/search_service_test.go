package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	text  string
	err   error
	calls int

	gotBucket int
	gotQuery  string
	gotN      int
}

func (f *fakeSearcher) SearchContent(_ context.Context, bucketID int, query string, n int) (string, error) {
	f.calls++
	f.gotBucket = bucketID
	f.gotQuery = query
	f.gotN = n
	return f.text, f.err
}

func TestSearchContextReturnsBackendText(t *testing.T) {
	searcher := &fakeSearcher{text: "matched context"}
	service := NewSearchService(searcher, 19837)

	got := service.SearchContext(context.Background(), "find foo")

	assert.Equal(t, "matched context", got)
	assert.Equal(t, 19837, searcher.gotBucket)
	assert.Equal(t, "find foo", searcher.gotQuery)
	assert.Equal(t, 10, searcher.gotN)
}

func TestSearchContextFailsOpenOnError(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("backend down")}
	service := NewSearchService(searcher, 1)

	got := service.SearchContext(context.Background(), "q")

	assert.Empty(t, got)
	assert.Equal(t, 1, searcher.calls)
}

func TestProbeUsesSingleResult(t *testing.T) {
	searcher := &fakeSearcher{}
	service := NewSearchService(searcher, 5)

	require.NoError(t, service.Probe(context.Background()))
	assert.Equal(t, 1, searcher.gotN)
	assert.Equal(t, 5, searcher.gotBucket)
}

func TestProbePropagatesError(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("unauthorized")}
	service := NewSearchService(searcher, 5)

	err := service.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}
