package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Flow     FlowConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	EscalationEmail    string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider       string // "mistral" or "ollama"
	LLMModel          string
	MistralAPIKey     string
	MistralBaseURL    string
	EmbeddingProvider string // "huggingface" or "ollama"
	EmbeddingModel    string
	HuggingFaceAPIKey string
	OllamaBaseURL     string
}

type FlowConfig struct {
	RetrievalLimit  int
	ClassifyTimeout time.Duration
	ExtractTimeout  time.Duration
	RetrieveTimeout time.Duration
	ComposeTimeout  time.Duration
	IngestTopic     string
	ChunkSize       int
	ChunkOverlap    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			EscalationEmail:    getEnv("ESCALATION_EMAIL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Cemear Support"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "mistral"),
			LLMModel:          getEnv("LLM_MODEL", "mistral-large-latest"),
			MistralAPIKey:     getEnv("MISTRAL_API_KEY", ""),
			MistralBaseURL:    getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "huggingface"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "BAAI/bge-large-en-v1.5"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Flow: FlowConfig{
			RetrievalLimit:  getEnvAsInt("RETRIEVAL_LIMIT", 4),
			ClassifyTimeout: getEnvAsDuration("CLASSIFY_TIMEOUT", 10*time.Second),
			ExtractTimeout:  getEnvAsDuration("EXTRACT_TIMEOUT", 10*time.Second),
			RetrieveTimeout: getEnvAsDuration("RETRIEVE_TIMEOUT", 10*time.Second),
			ComposeTimeout:  getEnvAsDuration("COMPOSE_TIMEOUT", 30*time.Second),
			IngestTopic:     getEnv("EMBED_KNOWLEDGE_TOPIC_NAME", "EMBED_KNOWLEDGE_CONTENT"),
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 500),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 50),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
