package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"ecomed-ai/internal/bom"
	"ecomed-ai/internal/catalog"
	"ecomed-ai/internal/service"
	"ecomed-ai/internal/vectorstore"
	"ecomed-ai/pkg/config"
	"ecomed-ai/pkg/logger"

	"go.uber.org/zap"
)

// bomcli runs the BOM matching pipeline against a local CSV without the
// HTTP server and writes the report to a JSON file.
func main() {
	bomPath := flag.String("bom", "data/hospital_purchase_order.csv", "path to the BOM CSV file")
	outPath := flag.String("out", "results.json", "path for the result JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	llmService, err := service.NewLLMService(&cfg.GigaChat, cfg.Similarity.EmbeddingModel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}
	defer llmService.Close()

	cat, err := catalog.Load(cfg.Catalog.CSVPath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load reference catalog", zap.Error(err))
	}

	store, err := vectorstore.Build(ctx, cat.ProductNames(), llmService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build vector store", zap.Error(err))
	}

	matcher := service.NewMatcher(llmService, appLogger)
	recommender := service.NewRecommender(store, matcher, cat, cfg.Similarity.TopK, appLogger)

	f, err := os.Open(*bomPath)
	if err != nil {
		appLogger.Fatal("Failed to open BOM CSV", zap.String("path", *bomPath), zap.Error(err))
	}
	rows, err := bom.Parse(f)
	f.Close()
	if err != nil {
		appLogger.Fatal("Failed to parse BOM CSV", zap.Error(err))
	}

	report := recommender.ProcessBOM(ctx, rows)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to marshal report", zap.Error(err))
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		appLogger.Fatal("Failed to write results", zap.Error(err))
	}

	appLogger.Info("Processing completed",
		zap.String("output", *outPath),
		zap.Int("items", len(report.Items)),
		zap.Float64("total_carbon_footprint", report.TotalCarbonFootprint),
	)
}
