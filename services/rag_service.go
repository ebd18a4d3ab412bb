package services

import (
	"context"
	"log"

	"github/itish2003/mcprag/models"
)

// RAGService is the request router: it sequences the search, compose, and
// generate steps for a query and exposes the individual gateways for direct
// tool-style invocation.
type RAGService interface {
	Chat(ctx context.Context, query string) (*models.ChatResponse, error)
	SearchContext(ctx context.Context, query string) string
	IngestDocument(ctx context.Context, localFilePath, fileType string) string
	Health(ctx context.Context) *models.HealthResponse
}

type ragServiceImpl struct {
	search     SearchService
	generation GenerationService
	ingest     IngestService
	bucketID   int
}

// NewRAGService wires the gateways into the request router. All dependencies
// are injected so tests can substitute fakes.
func NewRAGService(search SearchService, generation GenerationService, ingest IngestService, bucketID int) RAGService {
	return &ragServiceImpl{
		search:     search,
		generation: generation,
		ingest:     ingest,
		bucketID:   bucketID,
	}
}

// Chat runs the full pipeline: search for context, compose the prompt, and
// generate the answer. Search failures degrade to "no context"; generation
// failures propagate after the retry loop is exhausted.
func (r *ragServiceImpl) Chat(ctx context.Context, query string) (*models.ChatResponse, error) {
	log.Printf("SERVICE: Processing chat query: '%s'", query)

	searchText := r.search.SearchContext(ctx, query)

	prompt, contextUsed := BuildPrompt(query, searchText)
	if contextUsed {
		log.Println("SERVICE: Using context from document search")
	} else {
		log.Println("SERVICE: No context found, providing general response")
	}

	answer, err := r.generation.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Answer:      answer,
		ContextUsed: contextUsed,
		Query:       query,
	}, nil
}

func (r *ragServiceImpl) SearchContext(ctx context.Context, query string) string {
	return r.search.SearchContext(ctx, query)
}

func (r *ragServiceImpl) IngestDocument(ctx context.Context, localFilePath, fileType string) string {
	return r.ingest.IngestDocument(ctx, localFilePath, fileType)
}

// Health probes both external services with one minimal call each. Any
// failure marks the whole probe unhealthy with the failing error's message.
func (r *ragServiceImpl) Health(ctx context.Context) *models.HealthResponse {
	if err := r.search.Probe(ctx); err != nil {
		log.Printf("SERVICE: Health check failed: %v", err)
		return &models.HealthResponse{Status: "unhealthy", Error: err.Error()}
	}
	if err := r.generation.Probe(ctx); err != nil {
		log.Printf("SERVICE: Health check failed: %v", err)
		return &models.HealthResponse{Status: "unhealthy", Error: err.Error()}
	}
	return &models.HealthResponse{
		Status:   "healthy",
		GroundX:  "connected",
		Gemini:   "connected",
		BucketID: r.bucketID,
	}
}
