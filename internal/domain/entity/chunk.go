package entity

// ScoredChunk is a raw nearest-neighbor hit as returned by the vector index.
type ScoredChunk struct {
	ID       string
	Text     string
	Metadata map[string]any
	Distance float64
}

// RetrievedChunk is a search hit reshaped for answering: similarity is
// 1 - cosine distance.
type RetrievedChunk struct {
	ChunkText       string  `json:"chunk_text"`
	DocumentName    string  `json:"document_name"`
	ChunkIndex      int     `json:"chunk_index"`
	SimilarityScore float64 `json:"similarity_score"`
	ChunkID         string  `json:"chunk_id"`
}

// ChunkDetail describes one stored chunk of a named document.
type ChunkDetail struct {
	ChunkText   string `json:"chunk_text"`
	ChunkIndex  int    `json:"chunk_index"`
	ChunkLength int    `json:"chunk_length"`
	ChunkID     string `json:"chunk_id"`
}

// CollectionInfo reports the state of the active collection. Initialized is
// false when no collection has been created yet.
type CollectionInfo struct {
	Name        string
	Count       int
	Metadata    map[string]any
	Initialized bool
}
