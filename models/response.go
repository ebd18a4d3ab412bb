package models

// ChatResponse is the result of the full query-answering pipeline.
type ChatResponse struct {
	Answer      string `json:"answer"`
	ContextUsed bool   `json:"context_used"`
	Query       string `json:"query"`
	Error       string `json:"error,omitempty"`
}

// ToolResponse wraps the plain-text result of a direct tool invocation.
type ToolResponse struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse reports the outcome of the health probe.
type HealthResponse struct {
	Status   string `json:"status"`
	GroundX  string `json:"groundx,omitempty"`
	Gemini   string `json:"gemini,omitempty"`
	BucketID int    `json:"bucket_id,omitempty"`
	Error    string `json:"error,omitempty"`
}
