package main

import (
	"context"
	"fmt"

	"docassist/internal/adapter/filestore"
	"docassist/internal/adapter/openai"
	"docassist/internal/adapter/repository/postgres"
	"docassist/internal/delivery/http/handler"
	"docassist/internal/usecase/document"
	"docassist/internal/usecase/rag"
	"docassist/pkg/config"
	"docassist/pkg/database"
	"docassist/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Reload)
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	// connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	zlog.Info("connected to database")

	// initialize model server clients
	embedder := openai.NewEmbeddingClient(cfg.OpenAIBaseURL(), cfg.EmbeddingModel)
	llm := openai.NewGenerationClient(cfg.OpenAIBaseURL(), cfg.OllamaModel, cfg.Temperature, cfg.TopP, cfg.MaxTokens)

	// initialize vector index and document store
	index := postgres.NewChunkIndex(db, embedder, cfg.Collection, cfg.EmbeddingDimensions, zlog)
	if err := index.Init(context.Background()); err != nil {
		zlog.Fatal("failed to initialize vector index", zap.Error(err))
	}
	store := filestore.New(cfg.UploadDir)

	// initialize usecases
	docUsecase, err := document.NewDocumentUsecase(store, index, cfg.ChunkSize, cfg.ChunkOverlap, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize document pipeline", zap.Error(err))
	}

	// the engine is built on first request so the API can come up before
	// the model server does; construction failures surface as 503
	provider := rag.NewProvider(func(ctx context.Context) (*rag.RAGUsecase, error) {
		return rag.NewRAGUsecase(ctx, docUsecase, llm, cfg.MaxChunks, zlog)
	})
	engineProvider := func(ctx context.Context) (handler.Engine, error) {
		return provider.Get(ctx)
	}

	// initialize handlers
	docHandler := handler.NewDocumentHandler(engineProvider)
	healthHandler := handler.NewHealthHandler(engineProvider)

	// initialize fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // uploaded documents can be large
	})

	app.Use(fiberrecover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/api")
	})
	app.Get("/api", handler.APIInfo)

	api := app.Group("/api/v1")
	api.Get("/health", healthHandler.Check)
	api.Post("/documents/upload", docHandler.Upload)
	api.Get("/documents/", docHandler.List)
	api.Post("/documents/query", docHandler.Query)
	api.Get("/documents/:name/chunks", docHandler.Chunks)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zlog.Info("server starting", zap.String("addr", addr), zap.String("model", cfg.OllamaModel))
	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
