package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecomed-ai/internal/api"
	"ecomed-ai/internal/api/handlers"
	"ecomed-ai/internal/dto"
	"ecomed-ai/internal/models"
	"ecomed-ai/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProcessor struct{}

func (stubProcessor) ProcessBOM(_ context.Context, rows []models.BOMRow) *dto.ProcessingReport {
	items := make([]dto.ItemReport, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ItemReport{
			BOMItem:          row.ProductName,
			Quantity:         row.Quantity,
			UnitPrice:        row.UnitPrice,
			TotalPrice:       row.Quantity * row.UnitPrice,
			AlternativeItems: []dto.AlternativeItem{},
		})
	}
	return &dto.ProcessingReport{Items: items}
}

type stubClassifier struct {
	err error
}

func (s stubClassifier) Classify(_ context.Context, _ io.Reader, _ string) (string, models.BinColor, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "Sharps Waste", models.BinWhite, nil
}

func testApp(classifierErr error) *fiber.App {
	logger := zap.NewNop()
	supplyHandler := handlers.NewSupplyHandler(stubProcessor{}, logger)
	wasteHandler := handlers.NewWasteHandler(stubClassifier{err: classifierErr}, logger)
	return api.SetupRouter(supplyHandler, wasteHandler, &config.ServerConfig{})
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProcessBOMSuccess(t *testing.T) {
	app := testApp(nil)

	body, contentType := multipartBody(t, "bom_file", "bom.csv",
		"product_name,quantity,unit_price\nBeaker,2,1.5\n")
	req := httptest.NewRequest(http.MethodPost, "/supply/process", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.ProcessingReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Items, 1)
	assert.Equal(t, "Beaker", report.Items[0].BOMItem)
	assert.Equal(t, 3.0, report.Items[0].TotalPrice)
}

func TestProcessBOMEmptyRows(t *testing.T) {
	app := testApp(nil)

	body, contentType := multipartBody(t, "bom_file", "bom.csv",
		"product_name,quantity\n")
	req := httptest.NewRequest(http.MethodPost, "/supply/process", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.ProcessingReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Empty(t, report.Items)
	assert.Equal(t, 0.0, report.TotalCarbonFootprint)
}

func TestProcessBOMMissingFile(t *testing.T) {
	app := testApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/supply/process", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessBOMMissingProductColumn(t *testing.T) {
	app := testApp(nil)

	body, contentType := multipartBody(t, "bom_file", "bom.csv",
		"name,quantity\nBeaker,2\n")
	req := httptest.NewRequest(http.MethodPost, "/supply/process", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictSuccess(t *testing.T) {
	app := testApp(nil)

	body, contentType := multipartBody(t, "file", "needle.jpg", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/medical/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var prediction dto.PredictionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&prediction))
	assert.Equal(t, "Sharps Waste", prediction.Prediction)
	assert.Equal(t, "White", prediction.MappedBiomedicalCategory)
}

func TestPredictRejectsNonImage(t *testing.T) {
	app := testApp(nil)

	body, contentType := multipartBody(t, "file", "report.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/medical/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPredictClassifierFailure(t *testing.T) {
	app := testApp(errors.New("vision backend down"))

	body, contentType := multipartBody(t, "file", "needle.jpg", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/medical/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	app := testApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
