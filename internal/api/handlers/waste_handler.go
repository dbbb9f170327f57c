package handlers

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"ecomed-ai/internal/dto"
	"ecomed-ai/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Classifier assigns an uploaded image to a waste category and bin.
type Classifier interface {
	Classify(ctx context.Context, image io.Reader, fileName string) (string, models.BinColor, error)
}

type WasteHandler struct {
	classifier Classifier
	logger     *zap.Logger
}

func NewWasteHandler(classifier Classifier, logger *zap.Logger) *WasteHandler {
	return &WasteHandler{
		classifier: classifier,
		logger:     logger,
	}
}

var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".tiff": {},
}

// Predict handles POST /medical/predict: a multipart image upload of
// medical waste.
func (h *WasteHandler) Predict(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := imageExtensions[ext]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file format. Please upload an image.",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	category, bin, err := h.classifier.Classify(c.Context(), src, file.Filename)
	if err != nil {
		h.logger.Error("Failed to classify waste image", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to classify image",
		})
	}

	return c.JSON(dto.PredictionResponse{
		Prediction:               category,
		MappedBiomedicalCategory: string(bin),
	})
}
