package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Admin    AdminConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	// Postgres DSN for the analytics store. Empty disables analytics
	// persistence entirely.
	Connection string
}

type APIKeys struct {
	OpenAI      string
	GoogleBooks string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string
	OllamaBaseURL string
}

type AdminConfig struct {
	Email        string
	PasswordHash string // bcrypt
	JWTSecret    string
}

type SessionConfig struct {
	Backend      string // "memory" or "redis"
	AffiliateTag string
	MaxBooks     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8005"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost,http://localhost:8080,http://localhost:8081,https://bookgpt.vercel.app"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenAI:      getEnv("OPENAI_API_KEY", ""),
			GoogleBooks: getEnv("GOOGLE_BOOKS_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-3.5-turbo-1106"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
		},
		Session: SessionConfig{
			Backend:      getEnv("SESSION_BACKEND", "memory"),
			AffiliateTag: getEnv("AMAZON_ASSOCIATE_TAG", "bookgpt-20"),
			MaxBooks:     getEnvAsInt("MAX_RECOMMENDATIONS", 5),
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
