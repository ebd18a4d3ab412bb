package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github/itish2003/mcprag/models"

	"github.com/google/uuid"
)

const defaultFileType = "pdf"

// DocumentIngester is the slice of the GroundX client the ingestion gateway needs.
type DocumentIngester interface {
	IngestLocalDocument(ctx context.Context, doc models.GroundXDocument) (*models.IngestReceipt, error)
}

// IngestService submits local files to the knowledge base for indexing.
type IngestService interface {
	// IngestDocument validates the path and submits the file. The result is
	// always a human-readable string: a success message, or an error message
	// prefixed with "Error". Nothing is retried.
	IngestDocument(ctx context.Context, localFilePath, fileType string) string
}

type ingestServiceImpl struct {
	ingester DocumentIngester
	bucketID int
	now      func() time.Time
}

// NewIngestService creates an ingestion gateway scoped to one bucket.
func NewIngestService(ingester DocumentIngester, bucketID int) IngestService {
	return &ingestServiceImpl{ingester: ingester, bucketID: bucketID, now: time.Now}
}

func (s *ingestServiceImpl) IngestDocument(ctx context.Context, localFilePath, fileType string) string {
	if fileType == "" {
		fileType = defaultFileType
	}

	if _, err := os.Stat(localFilePath); err != nil {
		return fmt.Sprintf("Error: File not found at %s", localFilePath)
	}

	fileName := filepath.Base(localFilePath)
	log.Printf("SERVICE: Ingesting file: %s", fileName)

	doc := models.GroundXDocument{
		BucketID: s.bucketID,
		FileName: fileName,
		FilePath: localFilePath,
		FileType: strings.ToLower(fileType),
		SearchData: map[string]string{
			"uploaded_at": strconv.FormatInt(s.now().Unix(), 10),
			"upload_id":   uuid.New().String(),
		},
	}

	receipt, err := s.ingester.IngestLocalDocument(ctx, doc)
	if err != nil {
		log.Printf("SERVICE: Error ingesting document: %v", err)
		return fmt.Sprintf("Error ingesting document: %v", err)
	}

	log.Printf("SERVICE: Successfully ingested %s (process %s)", fileName, receipt.ProcessID)
	return fmt.Sprintf("Successfully ingested %s into the knowledge base. It should be available for search in a few minutes.", fileName)
}
