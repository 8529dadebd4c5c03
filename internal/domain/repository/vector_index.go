package repository

import (
	"context"

	"docassist/internal/domain/entity"
)

// VectorIndex owns one named collection of embedded document chunks.
// Embedding happens inside the implementation; callers only see text.
type VectorIndex interface {
	// AddChunks stores ordered chunks of one document. chunkMetadata may be
	// nil or shorter than chunks; extra fields are merged per position.
	AddChunks(ctx context.Context, chunks []string, documentName string, chunkMetadata []map[string]any) error

	// Search returns up to maxResults nearest chunks for the query,
	// closest first. Fails with entity.ErrCollectionNotInitialized if no
	// collection exists.
	Search(ctx context.Context, query string, maxResults int) ([]entity.ScoredChunk, error)

	// ChunksByDocument returns every chunk of the named document ordered by
	// chunk index. A document with no chunks yields an empty slice.
	ChunksByDocument(ctx context.Context, documentName string) ([]entity.ChunkDetail, error)

	// Info reports collection name, stored item count and metadata.
	Info(ctx context.Context) (*entity.CollectionInfo, error)
}
