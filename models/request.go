package models

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// SearchArguments are the arguments of the search tool.
type SearchArguments struct {
	Query string `json:"query"`
}

// IngestArguments are the arguments of the ingest tool.
type IngestArguments struct {
	LocalFilePath string `json:"local_file_path"`
	FileType      string `json:"file_type,omitempty"`
}

// SearchToolRequest is the body of POST /tools/search_doc_for_rag_context.
type SearchToolRequest struct {
	Arguments *SearchArguments `json:"arguments"`
}

// IngestToolRequest is the body of POST /tools/ingest_documents.
type IngestToolRequest struct {
	Arguments *IngestArguments `json:"arguments"`
}
