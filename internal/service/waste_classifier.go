package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ecomed-ai/internal/models"

	"go.uber.org/zap"
)

// VisionModel abstracts file upload plus vision completion.
type VisionModel interface {
	UploadFile(ctx context.Context, fileReader io.Reader, fileName string) (string, error)
	GenerateWithAttachment(ctx context.Context, fileID, prompt string) (string, error)
}

// WasteClassifier assigns a photo of medical waste to one of the seven
// waste categories and its disposal bin color.
type WasteClassifier struct {
	vision VisionModel
	logger *zap.Logger
}

func NewWasteClassifier(vision VisionModel, logger *zap.Logger) *WasteClassifier {
	return &WasteClassifier{
		vision: vision,
		logger: logger,
	}
}

func buildClassifyPrompt() string {
	var b strings.Builder
	b.WriteString("Look at this photo of medical waste and classify it into exactly one of the following categories:\n")
	for _, c := range models.WasteCategories {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString("\nAnswer with the category name only, exactly as written above. No explanation, no punctuation around it.")
	return b.String()
}

// Classify uploads the image and asks the vision model for the waste
// category, then maps it to the biomedical bin color.
func (c *WasteClassifier) Classify(ctx context.Context, image io.Reader, fileName string) (string, models.BinColor, error) {
	fileID, err := c.vision.UploadFile(ctx, image, fileName)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	response, err := c.vision.GenerateWithAttachment(ctx, fileID, buildClassifyPrompt())
	if err != nil {
		return "", "", fmt.Errorf("failed to classify image: %w", err)
	}

	category, ok := normalizeCategory(response)
	if !ok {
		c.logger.Warn("Unrecognized category from vision model",
			zap.String("response", response),
		)
		return "", "", fmt.Errorf("unrecognized waste category: %q", response)
	}

	bin, _ := models.BinFor(category)

	c.logger.Info("Waste image classified",
		zap.String("category", category),
		zap.String("bin", string(bin)),
	)
	return category, bin, nil
}

// normalizeCategory matches the model's answer against the known category
// labels, tolerating quoting and case differences. When the answer is prose
// it falls back to containment.
func normalizeCategory(response string) (string, bool) {
	answer := strings.TrimSpace(response)
	answer = strings.Trim(answer, "\"'`.")
	lower := strings.ToLower(answer)

	for _, c := range models.WasteCategories {
		if strings.EqualFold(answer, c) {
			return c, true
		}
	}
	for _, c := range models.WasteCategories {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}
