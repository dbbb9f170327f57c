package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"ecomed-ai/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LLMService struct {
	client         *gigago.Client
	model          *gigago.GenerativeModel
	config         *config.GigaChatConfig
	embeddingModel string
	logger         *zap.Logger
	httpClient     *http.Client
	baseURL        string
	accessToken    string // Cached access token for direct REST calls
}

// buildSystemInstruction creates the system instruction for procurement analysis
func buildSystemInstruction() string {
	return `You are a sustainable procurement analyst for healthcare supply chains. You match purchased items against a reference catalog of medical products with known life-cycle carbon footprints and identify lower-footprint substitutes.

Rules:
- Always answer in strict JSON when the request asks for JSON. No markdown fences, no commentary before or after the JSON payload.
- Only ever select items from the candidate list you are given. Never invent product names.
- If no candidate is a valid match for the purchased item, say so explicitly with a null match rather than guessing.
- Treat two products as equivalent only when they serve the same clinical function and are realistically interchangeable in a hospital setting.`
}

func NewLLMService(cfg *config.GigaChatConfig, embeddingModel string, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	// Build client options
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.1

	// Create HTTP client for direct REST calls (embeddings, files, vision)
	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	accessToken, err := getAccessToken(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	service := &LLMService{
		client:         client,
		model:          model,
		config:         cfg,
		embeddingModel: embeddingModel,
		logger:         logger,
		httpClient:     httpClient,
		accessToken:    accessToken,
		// Base URL for GigaChat REST API
		// Documentation: https://developers.sber.ru/docs/ru/gigachat/api/main
		baseURL: "https://gigachat.devices.sberbank.ru/api/v1",
	}

	logger.Info("LLM service initialized",
		zap.String("model", cfg.Model),
		zap.String("embedding_model", embeddingModel),
	)

	return service, nil
}

// getAccessToken obtains an access token from the GigaChat OAuth endpoint.
// Needed for embeddings, file uploads and other direct API calls. The API
// key is expected to be Base64-encoded already, per the GigaChat docs.
func getAccessToken(ctx context.Context, cfg *config.GigaChatConfig, httpClient *http.Client, logger *zap.Logger) (string, error) {
	oauthURL := "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"

	// RqUID is required by the GigaChat API
	rqUID := uuid.New().String()

	formData := url.Values{}
	formData.Set("scope", cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, "POST", oauthURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+cfg.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}

	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	return oauthResp.AccessToken, nil
}

// Generate sends a single prompt and returns the raw model text.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return resp.Choices[0].Message.Content, nil
}

// Embed returns one embedding vector per input text via the GigaChat
// embeddings endpoint.
// Documentation: https://developers.sber.ru/docs/ru/gigachat/api/main
// Endpoint: POST /embeddings
func (s *LLMService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	requestBody := map[string]interface{}{
		"model": s.embeddingModel,
		"input": texts,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embeddings request: %w", err)
	}

	resp, err := s.postEmbeddings(ctx, jsonData)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token expired: refresh once and retry
		resp.Body.Close()
		accessToken, err := getAccessToken(ctx, s.config, s.httpClient, s.logger)
		if err != nil {
			return nil, fmt.Errorf("embeddings failed with 401, token refresh also failed: %w", err)
		}
		s.accessToken = accessToken

		resp, err = s.postEmbeddings(ctx, jsonData)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var embResp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}

	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Data))
	}

	// The API is not required to preserve input order
	sort.Slice(embResp.Data, func(i, j int) bool {
		return embResp.Data[i].Index < embResp.Data[j].Index
	})

	vectors := make([][]float32, len(embResp.Data))
	for i, d := range embResp.Data {
		vectors[i] = d.Embedding
	}

	return vectors, nil
}

func (s *LLMService) postEmbeddings(ctx context.Context, jsonData []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get embeddings: %w", err)
	}
	return resp, nil
}

// UploadFile uploads a file to GigaChat and returns the file ID.
// Documentation: https://developers.sber.ru/docs/ru/gigachat/api/main
// Endpoint: POST /files
func (s *LLMService) UploadFile(ctx context.Context, fileReader io.Reader, fileName string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" purpose allows using uploaded files in generation requests
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		switch ext {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".png":
			mimeType = "image/png"
		case ".bmp":
			mimeType = "image/bmp"
		case ".tiff":
			mimeType = "image/tiff"
		default:
			mimeType = "application/octet-stream"
		}
	}

	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {mimeType},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, fileReader); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusRequestEntityTooLarge {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("file too large (413): %s", string(bodyBytes))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	s.logger.Debug("File uploaded to GigaChat", zap.String("file_id", uploadResp.ID))

	return uploadResp.ID, nil
}

// GenerateWithAttachment runs a vision completion over a previously
// uploaded file.
// Documentation: https://developers.sber.ru/docs/ru/gigachat/api/main
// Endpoint: POST /chat/completions with attachments: [["file_id"]]
func (s *LLMService) GenerateWithAttachment(ctx context.Context, fileID, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []map[string]interface{}{
			{
				"role":        "user",
				"content":     prompt,
				"attachments": [][]string{{fileID}},
			},
		},
		"temperature": 0.1,
		"stream":      false,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("no response from Vision API")
	}

	return strings.TrimSpace(visionResp.Choices[0].Message.Content), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
