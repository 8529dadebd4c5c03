package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// file and storage settings
	UploadDir   string
	DatabaseURL string

	// vector index
	Collection          string
	EmbeddingModel      string
	EmbeddingDimensions int

	// llm settings
	OllamaBaseURL string
	OllamaModel   string

	// rag config
	MaxChunks    int
	ChunkSize    int
	ChunkOverlap int

	// api settings
	Host        string
	Port        int
	Reload      bool
	CORSOrigins string

	// generation settings
	Temperature float32
	TopP        float32
	MaxTokens   int
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		UploadDir:   getEnv("UPLOAD_DIR", "./data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		Collection:          getEnv("VECTOR_COLLECTION", "documents"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 768),

		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2:1b"),

		MaxChunks:    getEnvInt("MAX_CHUNKS", 5),
		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 200),

		Host:        getEnv("API_HOST", "0.0.0.0"),
		Port:        getEnvInt("API_PORT", 8000),
		Reload:      getEnvBool("API_RELOAD", true),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		Temperature: getEnvFloat32("LLM_TEMPERATURE", 0.1),
		TopP:        getEnvFloat32("LLM_TOP_P", 0.9),
		MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 500),
	}
}

// Validate rejects settings that would break the ingestion pipeline,
// in particular an overlap that keeps the chunk window from advancing.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxChunks <= 0 {
		return fmt.Errorf("MAX_CHUNKS must be positive, got %d", c.MaxChunks)
	}
	if c.EmbeddingDimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive, got %d", c.EmbeddingDimensions)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// OpenAIBaseURL returns the OpenAI-compatible API root exposed by the
// Ollama server.
func (c *Config) OpenAIBaseURL() string {
	return strings.TrimRight(c.OllamaBaseURL, "/") + "/v1"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.EqualFold(val, "true")
	}
	return defaultVal
}

func getEnvFloat32(key string, defaultVal float32) float32 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 32); err == nil {
			return float32(f)
		}
	}
	return defaultVal
}
