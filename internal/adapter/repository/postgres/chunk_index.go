package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docassist/internal/domain/entity"
	"docassist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

var _ repository.VectorIndex = (*ChunkIndex)(nil)

// EmbeddingService turns text into vectors for storage and querying.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GenerateBatchEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

// collectionMetadata is attached to the collection and reported by Info.
var collectionMetadata = map[string]any{"description": "Document chunks for RAG"}

// ChunkIndex stores embedded document chunks in a pgvector-backed table,
// scoped to one named collection. Embeddings are computed internally; the
// callers only ever see chunk text.
type ChunkIndex struct {
	db         *sqlx.DB
	embedder   EmbeddingService
	collection string
	dimensions int
	ready      bool
	log        *zap.Logger
}

func NewChunkIndex(db *sqlx.DB, embedder EmbeddingService, collection string, dimensions int, log *zap.Logger) *ChunkIndex {
	return &ChunkIndex{
		db:         db,
		embedder:   embedder,
		collection: collection,
		dimensions: dimensions,
		log:        log,
	}
}

// Init creates the pgvector extension and chunk table if missing and marks
// the collection ready. Must be called before Search or AddChunks.
func (r *ChunkIndex) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	// dimension is part of the column type, so it goes into the DDL directly
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS document_chunks (
			id            text PRIMARY KEY,
			collection    text NOT NULL,
			document_name text NOT NULL,
			chunk_index   int  NOT NULL,
			chunk_length  int  NOT NULL,
			content       text NOT NULL,
			metadata      jsonb NOT NULL DEFAULT '{}',
			embedding     vector(%d) NOT NULL,
			created_at    timestamptz NOT NULL DEFAULT now()
		)`, r.dimensions)
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create chunk table: %w", err)
	}

	index := `
		CREATE INDEX IF NOT EXISTS idx_document_chunks_document
		ON document_chunks (collection, document_name, chunk_index)`
	if _, err := r.db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("failed to create document index: %w", err)
	}

	r.ready = true
	r.log.Info("chunk index initialized", zap.String("collection", r.collection))
	return nil
}

// AddChunks embeds and stores ordered chunks of one document. Each chunk id
// carries a random suffix so re-uploads of the same filename never collide.
func (r *ChunkIndex) AddChunks(ctx context.Context, chunks []string, documentName string, chunkMetadata []map[string]any) error {
	if !r.ready {
		return entity.ErrCollectionNotInitialized
	}
	if len(chunks) == 0 {
		return nil
	}

	embeddings, err := r.embedder.GenerateBatchEmbeddings(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO document_chunks (id, collection, document_name, chunk_index, chunk_length, content, metadata, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	for i, content := range chunks {
		var extra map[string]any
		if i < len(chunkMetadata) {
			extra = chunkMetadata[i]
		}
		metadata, err := json.Marshal(buildChunkMetadata(documentName, i, len(content), extra))
		if err != nil {
			return fmt.Errorf("failed to marshal chunk metadata: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			buildChunkID(documentName, i),
			r.collection,
			documentName,
			i,
			len(content),
			content,
			metadata,
			embeddings[i],
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Info("added chunks to vector index",
		zap.String("document", documentName),
		zap.Int("chunks", len(chunks)))
	return nil
}

// Search returns the maxResults nearest chunks to the query by cosine
// distance, closest first.
func (r *ChunkIndex) Search(ctx context.Context, query string, maxResults int) ([]entity.ScoredChunk, error) {
	if !r.ready {
		return nil, entity.ErrCollectionNotInitialized
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, metadata, embedding <=> $1 AS distance
		FROM document_chunks
		WHERE collection = $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`, embedding, r.collection, maxResults)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	defer rows.Close()

	var hits []entity.ScoredChunk
	for rows.Next() {
		var (
			hit entity.ScoredChunk
			raw []byte
		)
		if err := rows.Scan(&hit.ID, &hit.Text, &raw, &hit.Distance); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &hit.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode chunk metadata: %w", err)
		}
		hits = append(hits, hit)
	}

	return hits, rows.Err()
}

// ChunksByDocument is an exact lookup on the document name, ordered by
// chunk index. No similarity search is involved, so large documents are
// returned in full.
func (r *ChunkIndex) ChunksByDocument(ctx context.Context, documentName string) ([]entity.ChunkDetail, error) {
	if !r.ready {
		return nil, entity.ErrCollectionNotInitialized
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, chunk_index, chunk_length
		FROM document_chunks
		WHERE collection = $1 AND document_name = $2
		ORDER BY chunk_index ASC
	`, r.collection, documentName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chunks for %s: %w", documentName, err)
	}
	defer rows.Close()

	chunks := []entity.ChunkDetail{}
	for rows.Next() {
		var chunk entity.ChunkDetail
		if err := rows.Scan(&chunk.ChunkID, &chunk.ChunkText, &chunk.ChunkIndex, &chunk.ChunkLength); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// Info reports the collection name, total stored chunk count and metadata.
// Before Init it reports an explicit uninitialized marker.
func (r *ChunkIndex) Info(ctx context.Context) (*entity.CollectionInfo, error) {
	if !r.ready {
		return &entity.CollectionInfo{Initialized: false}, nil
	}

	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM document_chunks WHERE collection = $1`, r.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}

	return &entity.CollectionInfo{
		Name:        r.collection,
		Count:       count,
		Metadata:    collectionMetadata,
		Initialized: true,
	}, nil
}

// buildChunkID makes a globally unique chunk id: document name, position
// and a random suffix so re-uploading the same filename appends cleanly.
func buildChunkID(documentName string, index int) string {
	return fmt.Sprintf("%s_chunk_%d_%s", documentName, index, uuid.New().String()[:8])
}

func buildChunkMetadata(documentName string, index, length int, extra map[string]any) map[string]any {
	metadata := map[string]any{
		"document_name": documentName,
		"chunk_index":   index,
		"chunk_length":  length,
	}
	for k, v := range extra {
		metadata[k] = v
	}
	return metadata
}
