package handler

import (
	"fmt"

	"docassist/internal/delivery/http/dto"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	provider EngineProvider
}

func NewHealthHandler(provider EngineProvider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// Check reports system health: model-server connectivity, document
// subsystem readiness and stored totals.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	engine, err := h.provider(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: fmt.Sprintf("Health check failed: %v", err),
		})
	}

	status := engine.Status(c.Context())

	return c.Status(fiber.StatusOK).JSON(dto.HealthResponse{
		SystemReady:         status.SystemReady,
		LLMConnected:        status.LLMConnected,
		DocumentSystemReady: status.DocumentSystemReady,
		TotalDocuments:      status.TotalDocuments,
		TotalChunks:         status.TotalChunks,
		ModelName:           status.ModelName,
	})
}

// APIInfo describes the service and its endpoints.
func APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "DocAssist API",
		"version":     "0.1.0",
		"description": "Intelligent document assistant with RAG capabilities",
		"endpoints": fiber.Map{
			"health": "/api/v1/health",
			"upload": "/api/v1/documents/upload",
			"list":   "/api/v1/documents/",
			"query":  "/api/v1/documents/query",
			"chunks": "/api/v1/documents/:name/chunks",
		},
	})
}
