package openai

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingClient computes embeddings through an OpenAI-compatible API.
// Pointed at an Ollama server's /v1 endpoint it runs fully local.
type EmbeddingClient struct {
	client *openai.Client
	model  string
}

func NewEmbeddingClient(baseURL, model string) *EmbeddingClient {
	cfg := openai.DefaultConfig("ollama") // local server ignores the key
	cfg.BaseURL = baseURL
	return &EmbeddingClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateEmbedding embeds a single text.
func (c *EmbeddingClient) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := c.GenerateBatchEmbeddings(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	if len(vectors) == 0 {
		return pgvector.Vector{}, fmt.Errorf("no embedding returned for text")
	}
	return vectors[0], nil
}

// GenerateBatchEmbeddings embeds texts in one request, preserving order.
func (c *EmbeddingClient) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([]pgvector.Vector, len(resp.Data))
	for i, data := range resp.Data {
		embedding := make([]float32, len(data.Embedding))
		copy(embedding, data.Embedding)
		vectors[i] = pgvector.NewVector(embedding)
	}

	return vectors, nil
}
