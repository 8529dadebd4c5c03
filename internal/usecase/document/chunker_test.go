package document

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap above size", 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.size, tt.overlap)
			assert.Error(t, err)
		})
	}
}

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker, err := NewChunker(1000, 200)
	require.NoError(t, err)

	text := "a short document"
	chunks := chunker.ChunkText(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_ExactWindowSingleChunk(t *testing.T) {
	chunker, err := NewChunker(10, 2)
	require.NoError(t, err)

	text := strings.Repeat("x", 10)
	chunks := chunker.ChunkText(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestChunkText_OverlapProperty(t *testing.T) {
	const (
		size    = 50
		overlap = 10
	)
	chunker, err := NewChunker(size, overlap)
	require.NoError(t, err)

	text := strings.Repeat("abcdefghij", 37) // 370 chars
	chunks := chunker.ChunkText(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		assert.Equal(t, prev[len(prev)-overlap:], chunks[i][:overlap],
			"chunk %d must start with the last %d chars of chunk %d", i, overlap, i-1)
	}
}

func TestChunkText_WindowScenario(t *testing.T) {
	chunker, err := NewChunker(500, 100)
	require.NoError(t, err)

	text := strings.Repeat("A", 1000) + strings.Repeat("B", 1000)
	chunks := chunker.ChunkText(text)

	require.Len(t, chunks, 5)
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		assert.Equal(t, prev[len(prev)-100:], chunks[i][:100])
	}
}

func TestChunkText_Reconstruction(t *testing.T) {
	const overlap = 7
	chunker, err := NewChunker(31, overlap)
	require.NoError(t, err)

	text := strings.Repeat("the quick brown fox ", 20)
	chunks := chunker.ChunkText(text)
	require.Greater(t, len(chunks), 1)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		rebuilt.WriteString(chunk[overlap:])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkText_MultibyteWindows(t *testing.T) {
	const (
		size    = 10
		overlap = 2
	)
	chunker, err := NewChunker(size, overlap)
	require.NoError(t, err)

	text := strings.Repeat("世", 20)
	chunks := chunker.ChunkText(text)

	// windows count characters, so 20 CJK runes split as 10 + 10 + 4
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d must be valid UTF-8", i)
	}
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 10, utf8.RuneCountInString(chunks[1]))
	assert.Equal(t, 4, utf8.RuneCountInString(chunks[2]))

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		assert.Equal(t, string(prev[len(prev)-overlap:]), string([]rune(chunks[i])[:overlap]))
	}
}

func TestChunkText_MultibyteReconstruction(t *testing.T) {
	const overlap = 3
	chunker, err := NewChunker(12, overlap)
	require.NoError(t, err)

	text := strings.Repeat("héllo wörld ", 10)
	chunks := chunker.ChunkText(text)
	require.Greater(t, len(chunks), 1)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, chunk := range chunks[1:] {
		rebuilt.WriteString(string([]rune(chunk)[overlap:]))
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkText_FinalChunkMayBeShorter(t *testing.T) {
	chunker, err := NewChunker(100, 20)
	require.NoError(t, err)

	text := strings.Repeat("z", 150)
	chunks := chunker.ChunkText(text)

	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 70) // 150 - (100 - 20)
}
