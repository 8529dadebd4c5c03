package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatchEmbeddings(t *testing.T) {
	server := newModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)

		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float32{float32(i), 0.5},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data, "model": req.Model})
	})

	client := NewEmbeddingClient(server.URL+"/v1", "nomic-embed-text")
	vectors, err := client.GenerateBatchEmbeddings(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0, 0.5}, vectors[0].Slice())
	assert.Equal(t, []float32{1, 0.5}, vectors[1].Slice())
}

func TestGenerateEmbedding_Single(t *testing.T) {
	server := newModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2, 0.3}},
			},
			"model": "nomic-embed-text",
		})
	})

	client := NewEmbeddingClient(server.URL+"/v1", "nomic-embed-text")
	vector, err := client.GenerateEmbedding(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector.Slice())
}

func TestGenerateBatchEmbeddings_CountMismatch(t *testing.T) {
	server := newModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": []any{}, "model": "m"})
	})

	client := NewEmbeddingClient(server.URL+"/v1", "nomic-embed-text")
	_, err := client.GenerateBatchEmbeddings(context.Background(), []string{"one", "two"})

	assert.Error(t, err)
}

func TestGenerateBatchEmbeddings_ServerError(t *testing.T) {
	server := newModelServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	})

	client := NewEmbeddingClient(server.URL+"/v1", "nomic-embed-text")
	_, err := client.GenerateBatchEmbeddings(context.Background(), []string{"one"})

	assert.Error(t, err)
}
