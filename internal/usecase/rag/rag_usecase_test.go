package rag

import (
	"context"
	"errors"
	"testing"

	"docassist/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDocs struct {
	hits       []entity.RetrievedChunk
	searchErr  error
	list       *entity.DocumentList
	listErr    error
	maxResults int
}

func (s *stubDocs) Ingest(ctx context.Context, filename string, content []byte) (*entity.UploadResult, error) {
	return &entity.UploadResult{Filename: filename}, nil
}

func (s *stubDocs) Search(ctx context.Context, query string, maxResults int) ([]entity.RetrievedChunk, error) {
	s.maxResults = maxResults
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.hits, nil
}

func (s *stubDocs) List(ctx context.Context) (*entity.DocumentList, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.list != nil {
		return s.list, nil
	}
	return &entity.DocumentList{}, nil
}

func (s *stubDocs) ChunksFor(ctx context.Context, documentName string) ([]entity.ChunkDetail, error) {
	return []entity.ChunkDetail{}, nil
}

type stubLLM struct {
	connected bool
	answer    *entity.Answer
	gotChunks []entity.RetrievedChunk
}

func (s *stubLLM) TestConnection(ctx context.Context) bool { return s.connected }

func (s *stubLLM) Generate(ctx context.Context, question string, chunks []entity.RetrievedChunk) *entity.Answer {
	s.gotChunks = chunks
	return s.answer
}

func (s *stubLLM) ModelName() string { return "test-model" }

func newTestEngine(t *testing.T, docs *stubDocs, llm *stubLLM) *RAGUsecase {
	t.Helper()
	engine, err := NewRAGUsecase(context.Background(), docs, llm, 5, zap.NewNop())
	require.NoError(t, err)
	return engine
}

func TestNewRAGUsecase_FailsWhenLLMUnreachable(t *testing.T) {
	_, err := NewRAGUsecase(context.Background(), &stubDocs{}, &stubLLM{connected: false}, 5, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model server")
}

func TestNewRAGUsecase_FailsWhenDocumentSystemBroken(t *testing.T) {
	docs := &stubDocs{listErr: errors.New("db unreachable")}
	_, err := NewRAGUsecase(context.Background(), docs, &stubLLM{connected: true}, 5, zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document subsystem")
}

func TestAsk_SearchFailure(t *testing.T) {
	docs := &stubDocs{searchErr: errors.New("index offline")}
	engine := newTestEngine(t, docs, &stubLLM{connected: true})

	result := engine.Ask(context.Background(), "what is go?", 0)

	assert.False(t, result.Success)
	assert.Equal(t, "what is go?", result.Question)
	assert.Equal(t, 0, result.ChunksFound)
	assert.Empty(t, result.Sources)
	assert.Contains(t, result.Error, "index offline")
}

func TestAsk_NoRelevantChunks(t *testing.T) {
	engine := newTestEngine(t, &stubDocs{}, &stubLLM{connected: true})

	result := engine.Ask(context.Background(), "what is go?", 0)

	// empty index is not an error
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ChunksFound)
	assert.Empty(t, result.Error)
	assert.Contains(t, result.Answer, "couldn't find any relevant information")
}

func TestAsk_GeneratesFromHits(t *testing.T) {
	docs := &stubDocs{hits: []entity.RetrievedChunk{
		{ChunkText: "Go is compiled.", DocumentName: "go.txt", SimilarityScore: 0.9},
		{ChunkText: "Go has goroutines.", DocumentName: "go.txt", SimilarityScore: 0.8},
	}}
	llm := &stubLLM{connected: true, answer: &entity.Answer{
		Answer:    "Go is a compiled language.",
		Sources:   []string{"go.txt"},
		ModelUsed: "test-model",
		Success:   true,
	}}
	engine := newTestEngine(t, docs, llm)

	result := engine.Ask(context.Background(), "what is go?", 2)

	assert.True(t, result.Success)
	assert.Equal(t, "Go is a compiled language.", result.Answer)
	assert.Equal(t, []string{"go.txt"}, result.Sources)
	assert.Equal(t, 2, result.ChunksFound)
	assert.Equal(t, "test-model", result.ModelUsed)
	assert.Len(t, llm.gotChunks, 2)
}

func TestAsk_GenerationFailure(t *testing.T) {
	docs := &stubDocs{hits: []entity.RetrievedChunk{{ChunkText: "x", DocumentName: "a.txt"}}}
	llm := &stubLLM{connected: true, answer: &entity.Answer{
		Sources:      []string{},
		ModelUsed:    "test-model",
		Success:      false,
		ErrorMessage: "model timed out",
	}}
	engine := newTestEngine(t, docs, llm)

	result := engine.Ask(context.Background(), "what is go?", 0)

	assert.False(t, result.Success)
	assert.Equal(t, "model timed out", result.Error)
	assert.Equal(t, 1, result.ChunksFound)
}

func TestAsk_DefaultMaxChunks(t *testing.T) {
	docs := &stubDocs{}
	engine := newTestEngine(t, docs, &stubLLM{connected: true})

	engine.Ask(context.Background(), "q", 0)
	assert.Equal(t, 5, docs.maxResults)

	engine.Ask(context.Background(), "q", 3)
	assert.Equal(t, 3, docs.maxResults)
}

func TestStatus_Healthy(t *testing.T) {
	docs := &stubDocs{list: &entity.DocumentList{FileCount: 2, VectorChunkCount: 13}}
	engine := newTestEngine(t, docs, &stubLLM{connected: true})

	status := engine.Status(context.Background())

	assert.True(t, status.SystemReady)
	assert.True(t, status.LLMConnected)
	assert.True(t, status.DocumentSystemReady)
	assert.Equal(t, 2, status.TotalDocuments)
	assert.Equal(t, 13, status.TotalChunks)
	assert.Equal(t, "test-model", status.ModelName)
}

func TestStatus_DocumentSystemFault(t *testing.T) {
	docs := &stubDocs{}
	llm := &stubLLM{connected: true}
	engine := newTestEngine(t, docs, llm)

	docs.listErr = errors.New("db gone")
	status := engine.Status(context.Background())

	assert.False(t, status.SystemReady)
	assert.False(t, status.LLMConnected)
	assert.False(t, status.DocumentSystemReady)
	assert.Contains(t, status.Error, "db gone")
}
