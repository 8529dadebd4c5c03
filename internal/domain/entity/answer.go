package entity

// Answer is the generation client's result. Faults never escape the client;
// they come back as Success=false with ErrorMessage set.
type Answer struct {
	Answer       string
	Sources      []string
	ModelUsed    string
	Success      bool
	ErrorMessage string
}

// QueryResult is the orchestrator's structured response to a question.
type QueryResult struct {
	Question    string
	Answer      string
	Sources     []string
	Success     bool
	ChunksFound int
	ModelUsed   string
	Error       string
}

// UploadResult summarizes a completed ingestion.
type UploadResult struct {
	Filename   string
	FilePath   string
	TextLength int
	NumChunks  int
}

// DocumentList cross-references the file store with the vector index.
type DocumentList struct {
	Documents        []string
	FileCount        int
	VectorChunkCount int
}

// SystemStatus is the health check payload.
type SystemStatus struct {
	LLMConnected        bool
	DocumentSystemReady bool
	TotalDocuments      int
	TotalChunks         int
	ModelName           string
	SystemReady         bool
	Error               string
}
