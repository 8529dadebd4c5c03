package document

import (
	"context"
	"fmt"
	"path/filepath"

	"docassist/internal/domain/entity"
	"docassist/internal/domain/repository"

	"go.uber.org/zap"
)

// DocumentUsecase orchestrates the ingestion pipeline: file store, text
// extraction, chunking and the vector index.
type DocumentUsecase struct {
	store     repository.DocumentStore
	index     repository.VectorIndex
	extractor *TextExtractor
	chunker   *Chunker
	log       *zap.Logger
}

func NewDocumentUsecase(
	store repository.DocumentStore,
	index repository.VectorIndex,
	chunkSize, chunkOverlap int,
	log *zap.Logger,
) (*DocumentUsecase, error) {
	chunker, err := NewChunker(chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}

	return &DocumentUsecase{
		store:     store,
		index:     index,
		extractor: NewTextExtractor(),
		chunker:   chunker,
		log:       log,
	}, nil
}

// Ingest runs the full pipeline: save bytes, extract text by extension,
// normalize, chunk and index under the filename. The file store and the
// index are not transactionally linked; a failure after the save leaves the
// file on disk without index entries.
func (uc *DocumentUsecase) Ingest(ctx context.Context, filename string, content []byte) (*entity.UploadResult, error) {
	path, err := uc.store.Save(filename, content)
	if err != nil {
		return nil, err
	}
	uc.log.Info("saved document", zap.String("filename", filename), zap.String("path", path))

	extension := filepath.Ext(filename)
	rawText, err := uc.extractor.Extract(content, extension)
	if err != nil {
		return nil, err
	}
	uc.log.Info("extracted text", zap.String("filename", filename), zap.Int("chars", len(rawText)))

	cleanedText := NormalizeText(rawText)

	chunks := uc.chunker.ChunkText(cleanedText)
	uc.log.Info("chunked document", zap.String("filename", filename), zap.Int("chunks", len(chunks)))

	if err := uc.index.AddChunks(ctx, chunks, filename, nil); err != nil {
		return nil, err
	}

	return &entity.UploadResult{
		Filename:   filename,
		FilePath:   path,
		TextLength: len(cleanedText),
		NumChunks:  len(chunks),
	}, nil
}

// Search runs a nearest-neighbor query and reshapes hits for answering.
// An empty index yields an empty slice, not an error.
func (uc *DocumentUsecase) Search(ctx context.Context, query string, maxResults int) ([]entity.RetrievedChunk, error) {
	hits, err := uc.index.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	results := make([]entity.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		results = append(results, entity.RetrievedChunk{
			ChunkText:       hit.Text,
			DocumentName:    metaString(hit.Metadata, "document_name"),
			ChunkIndex:      metaInt(hit.Metadata, "chunk_index"),
			SimilarityScore: 1 - hit.Distance,
			ChunkID:         hit.ID,
		})
	}

	return results, nil
}

// List cross-references the file store with the index's chunk count.
func (uc *DocumentUsecase) List(ctx context.Context) (*entity.DocumentList, error) {
	files, err := uc.store.List()
	if err != nil {
		return nil, err
	}

	info, err := uc.index.Info(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.DocumentList{
		Documents:        files,
		FileCount:        len(files),
		VectorChunkCount: info.Count,
	}, nil
}

// ChunksFor returns every stored chunk of the named document in index
// order. An unknown document yields an empty slice, not an error.
func (uc *DocumentUsecase) ChunksFor(ctx context.Context, documentName string) ([]entity.ChunkDetail, error) {
	chunks, err := uc.index.ChunksByDocument(ctx, documentName)
	if err != nil {
		return nil, fmt.Errorf("failed to get chunks for %s: %w", documentName, err)
	}
	return chunks, nil
}

func metaString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// metaInt reads an integer metadata field. JSON decoding turns numbers into
// float64, so both forms are accepted.
func metaInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
