package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github/itish2003/mcprag/config"
	"github/itish2003/mcprag/controller"
	"github/itish2003/mcprag/groundx"
	"github/itish2003/mcprag/mcp"
	"github/itish2003/mcprag/services"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

const serverVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// One shared HTTP client for the search backend; its timeout bounds
	// every GroundX call.
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	groundxClient := groundx.NewClient(httpClient, cfg.GroundXBaseURL, cfg.GroundXAPIKey)
	log.Println("GroundX client initialized successfully")

	geminiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to create Gemini client: %v. Make sure GEMINI_API_KEY is set.", err)
	}
	log.Println("Successfully connected to Google Gemini.")

	searchService := services.NewSearchService(groundxClient, cfg.BucketID)
	generationService := services.NewGenerationService(geminiClient.Models)
	ingestService := services.NewIngestService(groundxClient, cfg.BucketID)
	ragService := services.NewRAGService(searchService, generationService, ingestService, cfg.BucketID)
	ragController := controller.NewRAGController(ragService)

	router := gin.Default()
	router.Use(controller.CORSMiddleware())
	ragController.RegisterRoutes(router)

	// The web server runs on its own goroutine; the tool-call server owns
	// the main goroutine. They share only the read-only service handles.
	go func() {
		log.Printf("Web interface available at: http://localhost%s", cfg.HTTPAddr)
		log.Printf("API endpoints:")
		log.Printf("  GET  / (chat interface)")
		log.Printf("  POST /chat")
		log.Printf("  POST /tools/search_doc_for_rag_context")
		log.Printf("  POST /tools/ingest_documents")
		log.Printf("  GET  /health")
		if err := router.Run(cfg.HTTPAddr); err != nil {
			log.Fatalf("FATAL: Failed to start server: %v", err)
		}
	}()

	ctx := context.Background()
	if cfg.WatchDir != "" {
		watcher := services.NewIngestWatcher(ingestService, cfg.WatchDir)
		go watcher.Watch(ctx)
	}

	toolServer := mcp.NewServer("eyelevel-rag", serverVersion)
	registerTools(toolServer, ragService)

	log.Printf("Using GroundX bucket ID: %d", cfg.BucketID)
	log.Println("Starting tool-call server on stdio...")
	if err := toolServer.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("FATAL: Tool server error: %v", err)
	}
	log.Println("Server shutting down...")
}

// registerTools exposes the two gateway operations over the tool-call surface
// with the same semantics as their HTTP counterparts.
func registerTools(server *mcp.Server, ragService services.RAGService) {
	server.RegisterTool(mcp.Tool{
		Name:        "search_doc_for_rag_context",
		Description: "Searches and retrieves relevant context from a knowledge base, based on the user's query.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query supplied by the user.",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			query, _ := args["query"].(string)
			if query == "" {
				return "", fmt.Errorf("'query' argument must be a non-empty string")
			}
			return ragService.SearchContext(ctx, query), nil
		},
	})

	server.RegisterTool(mcp.Tool{
		Name:        "ingest_documents",
		Description: "Ingest documents from a local file into the knowledge base.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"local_file_path": map[string]any{
					"type":        "string",
					"description": "The path to the local file containing the documents to ingest.",
				},
				"file_type": map[string]any{
					"type":        "string",
					"description": "The type of file (pdf, txt, docx, etc.)",
				},
			},
			"required": []string{"local_file_path"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			path, _ := args["local_file_path"].(string)
			if path == "" {
				return "", fmt.Errorf("'local_file_path' argument must be a non-empty string")
			}
			fileType, _ := args["file_type"].(string)
			return ragService.IngestDocument(ctx, path, fileType), nil
		},
	})
}
