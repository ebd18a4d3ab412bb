package groundx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github/itish2003/mcprag/models"
)

// Client is a thin REST client for the GroundX search and ingestion API.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a GroundX client. The http.Client is injected so callers
// control timeouts and tests can point at a local server.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// SearchContent runs a content search over the given bucket and returns the
// aggregated text of the matched chunks. An empty string means no match.
func (c *Client) SearchContent(ctx context.Context, bucketID int, query string, n int) (string, error) {
	reqBody, err := json.Marshal(models.SearchContentRequest{
		Search: models.SearchQuery{Query: query},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/search/%d?n=%d", c.baseURL, bucketID, n)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create search http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call groundx search api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groundx search api returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp models.SearchContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode groundx search response: %w", err)
	}
	return searchResp.Search.Text, nil
}

// IngestLocalDocument uploads a local file to the backend for indexing and
// returns the receipt of the queued ingestion job.
func (c *Client) IngestLocalDocument(ctx context.Context, doc models.GroundXDocument) (*models.IngestReceipt, error) {
	file, err := os.Open(doc.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", doc.FilePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metadata, err := json.Marshal(models.IngestMetadata{
		BucketID:   doc.BucketID,
		FileName:   doc.FileName,
		FileType:   doc.FileType,
		SearchData: doc.SearchData,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingest metadata: %w", err)
	}
	if err := writer.WriteField("metadata", string(metadata)); err != nil {
		return nil, fmt.Errorf("failed to write metadata part: %w", err)
	}

	part, err := writer.CreateFormFile("blob", doc.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc.FilePath, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.baseURL + "/ingest/documents/local"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingest http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("X-API-Key", c.apiKey)
	httpReq.Header.Set("X-Bucket-ID", strconv.Itoa(doc.BucketID))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call groundx ingest api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("groundx ingest api returned non-200 status: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var ingestResp models.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&ingestResp); err != nil {
		return nil, fmt.Errorf("failed to decode groundx ingest response: %w", err)
	}
	return &ingestResp.Ingest, nil
}
