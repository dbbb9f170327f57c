package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"ecomed-ai/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVision struct {
	uploadErr error
	response  string
	genErr    error
}

func (s *stubVision) UploadFile(_ context.Context, _ io.Reader, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return "file-123", nil
}

func (s *stubVision) GenerateWithAttachment(_ context.Context, _, _ string) (string, error) {
	return s.response, s.genErr
}

func TestClassifyKnownCategory(t *testing.T) {
	c := NewWasteClassifier(&stubVision{response: "Sharps Waste"}, zap.NewNop())

	category, bin, err := c.Classify(context.Background(), strings.NewReader("img"), "needle.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Sharps Waste", category)
	assert.Equal(t, models.BinWhite, bin)
}

func TestClassifyToleratesQuotingAndCase(t *testing.T) {
	c := NewWasteClassifier(&stubVision{response: `"infectious waste"`}, zap.NewNop())

	category, bin, err := c.Classify(context.Background(), strings.NewReader("img"), "glove.png")
	require.NoError(t, err)
	assert.Equal(t, "Infectious Waste", category)
	assert.Equal(t, models.BinRed, bin)
}

func TestClassifyToleratesProse(t *testing.T) {
	c := NewWasteClassifier(&stubVision{response: "This looks like General Waste - Plastic to me."}, zap.NewNop())

	category, bin, err := c.Classify(context.Background(), strings.NewReader("img"), "bottle.png")
	require.NoError(t, err)
	assert.Equal(t, "General Waste - Plastic", category)
	assert.Equal(t, models.BinBlue, bin)
}

func TestClassifyUnrecognizedCategory(t *testing.T) {
	c := NewWasteClassifier(&stubVision{response: "Radioactive Waste"}, zap.NewNop())

	_, _, err := c.Classify(context.Background(), strings.NewReader("img"), "drum.png")
	assert.Error(t, err)
}

func TestClassifyUploadFailure(t *testing.T) {
	c := NewWasteClassifier(&stubVision{uploadErr: errors.New("413")}, zap.NewNop())

	_, _, err := c.Classify(context.Background(), strings.NewReader("img"), "big.png")
	assert.Error(t, err)
}

func TestBinMappingCoversAllCategories(t *testing.T) {
	for _, category := range models.WasteCategories {
		bin, ok := models.BinFor(category)
		assert.True(t, ok, category)
		assert.NotEmpty(t, bin)
	}
}
