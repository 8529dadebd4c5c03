package document

import "fmt"

// Chunker splits text into fixed-size windows with a character overlap
// between consecutive chunks.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker validates the window configuration. An overlap at or above the
// window size would keep the window from advancing, so it is rejected.
func NewChunker(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", chunkOverlap)
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", chunkOverlap, chunkSize)
	}

	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}, nil
}

// ChunkText splits text into overlapping windows. Window size and overlap
// count characters, not bytes, so a boundary never lands inside a rune.
// Text at or under the window size comes back as a single chunk; the final
// chunk may be shorter than the window.
func (c *Chunker) ChunkText(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))

		if end >= len(runes) {
			break
		}
		start = end - c.chunkOverlap
	}

	return chunks
}
