package rag

import (
	"context"
	"fmt"

	"docassist/internal/domain/entity"

	"go.uber.org/zap"
)

// GenerationService is the model-server client the orchestrator talks to.
type GenerationService interface {
	TestConnection(ctx context.Context) bool
	Generate(ctx context.Context, question string, chunks []entity.RetrievedChunk) *entity.Answer
	ModelName() string
}

// DocumentService is the document pipeline the orchestrator fronts.
type DocumentService interface {
	Ingest(ctx context.Context, filename string, content []byte) (*entity.UploadResult, error)
	Search(ctx context.Context, query string, maxResults int) ([]entity.RetrievedChunk, error)
	List(ctx context.Context) (*entity.DocumentList, error)
	ChunksFor(ctx context.Context, documentName string) ([]entity.ChunkDetail, error)
}

// RAGUsecase answers questions by retrieving relevant chunks and forwarding
// them with the question to the generation client.
type RAGUsecase struct {
	docs      DocumentService
	llm       GenerationService
	maxChunks int
	log       *zap.Logger
}

// NewRAGUsecase verifies model-server connectivity and document-subsystem
// readiness and fails construction if either check fails.
func NewRAGUsecase(ctx context.Context, docs DocumentService, llm GenerationService, maxChunks int, log *zap.Logger) (*RAGUsecase, error) {
	if !llm.TestConnection(ctx) {
		return nil, fmt.Errorf("failed to connect to model server: make sure Ollama is running and model %q is installed", llm.ModelName())
	}
	if _, err := docs.List(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize document subsystem: %w", err)
	}

	return &RAGUsecase{
		docs:      docs,
		llm:       llm,
		maxChunks: maxChunks,
		log:       log,
	}, nil
}

// Ask runs the full question pipeline. It always returns a structured
// result: a failed search and a failed generation both come back as
// Success=false, and an empty index comes back as a successful answer
// saying nothing relevant was found.
func (uc *RAGUsecase) Ask(ctx context.Context, question string, maxChunks int) *entity.QueryResult {
	if maxChunks <= 0 {
		maxChunks = uc.maxChunks
	}

	hits, err := uc.docs.Search(ctx, question, maxChunks)
	if err != nil {
		uc.log.Error("document search failed", zap.Error(err))
		return &entity.QueryResult{
			Question:  question,
			Answer:    "Failed to search documents.",
			Sources:   []string{},
			Success:   false,
			Error:     err.Error(),
			ModelUsed: uc.llm.ModelName(),
		}
	}

	// no error and no evidence are different outcomes
	if len(hits) == 0 {
		return &entity.QueryResult{
			Question:  question,
			Answer:    "I couldn't find any relevant information in the uploaded documents to answer your question.",
			Sources:   []string{},
			Success:   true,
			ModelUsed: uc.llm.ModelName(),
		}
	}

	answer := uc.llm.Generate(ctx, question, hits)
	return &entity.QueryResult{
		Question:    question,
		Answer:      answer.Answer,
		Sources:     answer.Sources,
		Success:     answer.Success,
		Error:       answer.ErrorMessage,
		ChunksFound: len(hits),
		ModelUsed:   answer.ModelUsed,
	}
}

// Ingest uploads a new document and makes it available for questioning.
func (uc *RAGUsecase) Ingest(ctx context.Context, filename string, content []byte) (*entity.UploadResult, error) {
	return uc.docs.Ingest(ctx, filename, content)
}

// List returns all processed documents available for questioning.
func (uc *RAGUsecase) List(ctx context.Context) (*entity.DocumentList, error) {
	return uc.docs.List(ctx)
}

// ChunksFor returns the stored chunks of one document in order.
func (uc *RAGUsecase) ChunksFor(ctx context.Context, documentName string) ([]entity.ChunkDetail, error) {
	return uc.docs.ChunksFor(ctx, documentName)
}

// Status reports the health of both subsystems. A fault while collecting
// yields all-false flags plus the error.
func (uc *RAGUsecase) Status(ctx context.Context) *entity.SystemStatus {
	llmConnected := uc.llm.TestConnection(ctx)

	list, err := uc.docs.List(ctx)
	if err != nil {
		return &entity.SystemStatus{
			ModelName: uc.llm.ModelName(),
			Error:     err.Error(),
		}
	}

	return &entity.SystemStatus{
		LLMConnected:        llmConnected,
		DocumentSystemReady: true,
		TotalDocuments:      list.FileCount,
		TotalChunks:         list.VectorChunkCount,
		ModelName:           uc.llm.ModelName(),
		SystemReady:         llmConnected,
	}
}
