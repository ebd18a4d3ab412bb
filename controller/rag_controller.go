package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github/itish2003/mcprag/models"
	"github/itish2003/mcprag/services"
)

// RAGController handles the HTTP requests for the RAG API. It depends on the
// RAGService to perform the actual business logic.
type RAGController struct {
	ragService services.RAGService
}

// NewRAGController is a constructor function that creates a new RAGController.
// This is called from main.go to inject the service dependency.
func NewRAGController(service services.RAGService) *RAGController {
	return &RAGController{
		ragService: service,
	}
}

// RegisterRoutes attaches all HTTP endpoints to the router.
func (c *RAGController) RegisterRoutes(router gin.IRouter) {
	router.GET("/", c.Index)
	router.POST("/chat", c.Chat)
	router.POST("/tools/search_doc_for_rag_context", c.SearchTool)
	router.POST("/tools/ingest_documents", c.IngestTool)
	router.GET("/health", c.Health)
}

// Index serves the embedded chat page.
func (c *RAGController) Index(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(chatPage))
}

// Chat is the Gin handler for POST /chat. It validates the query, then runs
// the search -> compose -> generate pipeline. Validation failures return 400
// before any backend call is made; pipeline failures return 500 with the
// error's message.
func (c *RAGController) Chat(ctx *gin.Context) {
	var req models.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}

	response, err := c.ragService.Chat(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// SearchTool is the HTTP counterpart of the search tool.
func (c *RAGController) SearchTool(ctx *gin.Context) {
	var req models.SearchToolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Arguments == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	// Presence check only: the chat endpoint trims, but the tool surface
	// forwards whatever string the caller sent.
	if req.Arguments.Query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No query provided"})
		return
	}

	result := c.ragService.SearchContext(ctx.Request.Context(), req.Arguments.Query)
	ctx.JSON(http.StatusOK, models.ToolResponse{Result: result})
}

// IngestTool is the HTTP counterpart of the ingest tool.
func (c *RAGController) IngestTool(ctx *gin.Context) {
	var req models.IngestToolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Arguments == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Arguments.LocalFilePath == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file path provided"})
		return
	}

	result := c.ragService.IngestDocument(ctx.Request.Context(), req.Arguments.LocalFilePath, req.Arguments.FileType)
	ctx.JSON(http.StatusOK, models.ToolResponse{Result: result})
}

// Health is the Gin handler for GET /health. Both external services are
// probed; any failure yields a 503.
func (c *RAGController) Health(ctx *gin.Context) {
	response := c.ragService.Health(ctx.Request.Context())
	if response.Status != "healthy" {
		ctx.JSON(http.StatusServiceUnavailable, response)
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// CORSMiddleware allows the embedded page to be served from another origin
// during development.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
