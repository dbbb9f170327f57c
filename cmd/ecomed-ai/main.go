package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ecomed-ai/internal/api"
	"ecomed-ai/internal/api/handlers"
	"ecomed-ai/internal/catalog"
	"ecomed-ai/internal/service"
	"ecomed-ai/internal/vectorstore"
	"ecomed-ai/pkg/config"
	"ecomed-ai/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting EcoMedAI service")

	ctx := context.Background()

	// Initialize LLM service
	llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.Similarity.EmbeddingModel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	// Load the reference catalog and build the similarity index before
	// accepting any request.
	cat, err := catalog.Load(cfg.Catalog.CSVPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load reference catalog", zap.Error(err))
	}

	store, err := vectorstore.Build(ctx, cat.ProductNames(), llmService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build vector store", zap.Error(err))
	}

	// Initialize services
	matcher := service.NewMatcher(llmService, appLogger)
	recommender := service.NewRecommender(store, matcher, cat, cfg.Similarity.TopK, appLogger)
	classifier := service.NewWasteClassifier(llmService, appLogger)

	// Initialize handlers
	supplyHandler := handlers.NewSupplyHandler(recommender, appLogger)
	wasteHandler := handlers.NewWasteHandler(classifier, appLogger)

	// Setup router
	app := api.SetupRouter(supplyHandler, wasteHandler, &cfg.Server)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
