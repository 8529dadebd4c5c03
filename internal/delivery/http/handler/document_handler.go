package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"docassist/internal/delivery/http/dto"
	"docassist/internal/domain/entity"

	"github.com/gofiber/fiber/v2"
)

// Engine is the orchestrator facade the handlers talk to.
type Engine interface {
	Ask(ctx context.Context, question string, maxChunks int) *entity.QueryResult
	Status(ctx context.Context) *entity.SystemStatus
	Ingest(ctx context.Context, filename string, content []byte) (*entity.UploadResult, error)
	List(ctx context.Context) (*entity.DocumentList, error)
	ChunksFor(ctx context.Context, documentName string) ([]entity.ChunkDetail, error)
}

// EngineProvider yields the shared engine, constructing it if needed.
// Construction failures map to 503.
type EngineProvider func(ctx context.Context) (Engine, error)

// allowedExtensions is the upload allow-list; checked before any storage
// or indexing happens.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type DocumentHandler struct {
	provider EngineProvider
}

func NewDocumentHandler(provider EngineProvider) *DocumentHandler {
	return &DocumentHandler{provider: provider}
}

// Upload accepts a multipart file, validates its extension and runs the
// ingestion pipeline.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "Failed to get file"})
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Unsupported file type. Allowed: .pdf, .docx, .txt",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: "Failed to open file"})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: "Failed to read file"})
	}

	engine, err := h.provider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to initialize RAG engine: %v", err),
		})
	}

	result, err := engine.Ingest(c.Context(), file.Filename, content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to process document: %v", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.UploadDocumentResponse{
		Status:    "success",
		Filename:  result.Filename,
		Message:   fmt.Sprintf("Successfully processed %s", result.Filename),
		NumChunks: result.NumChunks,
		FilePath:  result.FilePath,
	})
}

// List returns all uploaded documents with file and chunk counts.
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	engine, err := h.provider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to initialize RAG engine: %v", err),
		})
	}

	list, err := engine.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to list documents: %v", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DocumentListResponse{
		Status:           "success",
		Documents:        list.Documents,
		FileCount:        list.FileCount,
		VectorChunkCount: list.VectorChunkCount,
	})
}

// Query answers a question about the uploaded documents. Business-logic
// failures come back in the 200 body with success=false; only transport
// and initialization faults produce error status codes.
func (h *DocumentHandler) Query(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "Invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "question is required"})
	}

	engine, err := h.provider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to initialize RAG engine: %v", err),
		})
	}

	result := engine.Ask(c.Context(), req.Question, req.MaxChunks)

	return c.Status(fiber.StatusOK).JSON(dto.QuestionResponse{
		Question:    result.Question,
		Answer:      result.Answer,
		Sources:     result.Sources,
		Success:     result.Success,
		ChunksFound: result.ChunksFound,
		ModelUsed:   result.ModelUsed,
		Error:       result.Error,
	})
}

// Chunks returns all stored chunks for one document, in index order.
func (h *DocumentHandler) Chunks(c *fiber.Ctx) error {
	documentName := c.Params("name")

	engine, err := h.provider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to initialize RAG engine: %v", err),
		})
	}

	chunks, err := engine.ChunksFor(c.Context(), documentName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Failed to get chunks for %s: %v", documentName, err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DocumentChunksResponse{
		Status:       "success",
		DocumentName: documentName,
		NumChunks:    len(chunks),
		Chunks:       chunks,
	})
}
