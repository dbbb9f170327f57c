package handlers

import (
	"context"
	"errors"

	"ecomed-ai/internal/bom"
	"ecomed-ai/internal/dto"
	"ecomed-ai/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BOMProcessor runs the matching pipeline over parsed BOM rows.
type BOMProcessor interface {
	ProcessBOM(ctx context.Context, rows []models.BOMRow) *dto.ProcessingReport
}

type SupplyHandler struct {
	recommender BOMProcessor
	logger      *zap.Logger
}

func NewSupplyHandler(recommender BOMProcessor, logger *zap.Logger) *SupplyHandler {
	return &SupplyHandler{
		recommender: recommender,
		logger:      logger,
	}
}

// ProcessBOM handles POST /supply/process: a multipart BOM CSV upload.
// Malformed uploads are client errors; row-level matching failures are
// absorbed by the pipeline and still produce a 200 with a partial report.
func (h *SupplyHandler) ProcessBOM(c *fiber.Ctx) error {
	file, err := c.FormFile("bom_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "BOM CSV file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open BOM upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid BOM CSV file provided",
		})
	}
	defer src.Close()

	rows, err := bom.Parse(src)
	if err != nil {
		if errors.Is(err, bom.ErrMissingProductColumn) || errors.Is(err, bom.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to parse BOM CSV", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Error processing CSV file",
		})
	}

	report := h.recommender.ProcessBOM(c.Context(), rows)
	return c.JSON(report)
}
