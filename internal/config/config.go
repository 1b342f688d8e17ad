package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Assistant   AssistantConfig
	Persistence PersistenceConfig
	Keys        TopicKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	SessionTTL         time.Duration
}

type DatabaseConfig struct {
	Connection string
}

// AssistantConfig points at the conversational assistant collaborator.
type AssistantConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PersistenceConfig points at the structured-log endpoint. By default it
// loops back to this service's own route.
type PersistenceConfig struct {
	BaseURL string
	Timeout time.Duration
}

type TopicKeys struct {
	AuditTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	port := getEnv("APP_PORT", "3000")

	return &Config{
		App: AppConfig{
			Port:               port,
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:"+port),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionTTL:         getEnvAsDuration("CHAT_SESSION_TTL", 24*time.Hour),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Assistant: AssistantConfig{
			BaseURL: getEnv("ASSISTANT_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("ASSISTANT_TIMEOUT", 60*time.Second),
		},
		Persistence: PersistenceConfig{
			BaseURL: getEnv("PERSISTENCE_BASE_URL", "http://localhost:"+port),
			Timeout: getEnvAsDuration("PERSISTENCE_TIMEOUT", 30*time.Second),
		},
		Keys: TopicKeys{
			AuditTopic: getEnv("INTERACTION_LOGGED_TOPIC_NAME", "INTERACTION_LOGGED"),
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
