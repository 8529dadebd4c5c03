package dto

import "docassist/internal/domain/entity"

type UploadDocumentResponse struct {
	Status    string `json:"status"`
	Filename  string `json:"filename"`
	Message   string `json:"message"`
	NumChunks int    `json:"num_chunks"`
	FilePath  string `json:"file_path"`
}

type QuestionRequest struct {
	Question  string `json:"question"`
	MaxChunks int    `json:"max_chunks"`
}

type QuestionResponse struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Sources     []string `json:"sources"`
	Success     bool     `json:"success"`
	ChunksFound int      `json:"chunks_found"`
	ModelUsed   string   `json:"model_used"`
	Error       string   `json:"error,omitempty"`
}

type DocumentListResponse struct {
	Status           string   `json:"status"`
	Documents        []string `json:"documents"`
	FileCount        int      `json:"file_count"`
	VectorChunkCount int      `json:"vector_chunk_count"`
}

type DocumentChunksResponse struct {
	Status       string               `json:"status"`
	DocumentName string               `json:"document_name"`
	NumChunks    int                  `json:"num_chunks"`
	Chunks       []entity.ChunkDetail `json:"chunks"`
}

type HealthResponse struct {
	SystemReady         bool   `json:"system_ready"`
	LLMConnected        bool   `json:"llm_connected"`
	DocumentSystemReady bool   `json:"document_system_ready"`
	TotalDocuments      int    `json:"total_documents"`
	TotalChunks         int    `json:"total_chunks"`
	ModelName           string `json:"model_name"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
