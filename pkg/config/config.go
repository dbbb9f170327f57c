package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	GigaChat   GigaChatConfig
	Similarity SimilarityConfig
	Catalog    CatalogConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type SimilarityConfig struct {
	EmbeddingModel string
	TopK           int
}

type CatalogConfig struct {
	CSVPath string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine: plain environment variables work for Docker/K8s

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	topK, _ := strconv.Atoi(getEnv("SIMILARITY_TOP_K", "5"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Similarity: SimilarityConfig{
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "Embeddings"),
			TopK:           topK,
		},
		Catalog: CatalogConfig{
			CSVPath: getEnv("CATALOG_CSV_PATH", "data/healthcare_lca_master_data.csv"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
