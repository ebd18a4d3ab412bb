package models

// GroundXDocument describes a local file submitted to the backend for indexing.
type GroundXDocument struct {
	BucketID   int
	FileName   string
	FilePath   string
	FileType   string
	SearchData map[string]string
}

// SearchContentRequest is the body of the backend search call.
type SearchContentRequest struct {
	Search SearchQuery `json:"search"`
}

// SearchQuery carries the query text.
type SearchQuery struct {
	Query string `json:"query"`
}

// SearchContentResponse is the backend search reply. Text is the aggregated
// context across all matched chunks; empty means no match.
type SearchContentResponse struct {
	Search SearchResultBody `json:"search"`
}

// SearchResultBody holds the fields of the search reply we consume.
type SearchResultBody struct {
	Text  string `json:"text"`
	Count int    `json:"count,omitempty"`
}

// IngestMetadata is the metadata part of the multipart ingest upload.
type IngestMetadata struct {
	BucketID   int               `json:"bucketId"`
	FileName   string            `json:"fileName"`
	FileType   string            `json:"fileType"`
	SearchData map[string]string `json:"searchData,omitempty"`
}

// IngestResponse is the backend ingest reply.
type IngestResponse struct {
	Ingest IngestReceipt `json:"ingest"`
}

// IngestReceipt identifies the queued ingestion job.
type IngestReceipt struct {
	ProcessID string `json:"processId"`
	Status    string `json:"status"`
}
