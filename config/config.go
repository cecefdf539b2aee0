package config

import (
	"log"
	"os"
	"strconv"

	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppMode     string
	LogFilePath string
	DatabaseURL string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	StabilityAPIKey string
	StabilityAPIURL string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	CDNBaseURL  string

	// Largest accepted request body, in bytes.
	MaxBodyBytes int
}

const DefaultStabilityAPIURL = "https://api.stability.ai/v1/generation/stable-diffusion-xl-1024-v1-0/text-to-image"

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		AppMode:         getEnv("APP_MODE", "debug"),
		LogFilePath:     getEnv("LOG_FILE_PATH", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4"),
		StabilityAPIKey: getEnv("STABILITY_API_KEY", ""),
		StabilityAPIURL: getEnv("STABILITY_API_URL", DefaultStabilityAPIURL),
		S3Endpoint:      getEnv("S3_ENDPOINT", "https://bucket.poehali.dev"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "files"),
		S3AccessKey:     getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNBaseURL:      getEnv("CDN_BASE_URL", "https://cdn.poehali.dev"),
		MaxBodyBytes:    getEnvAsInt("MAX_BODY_BYTES", 1<<20),
	}
}

// Validate checks the settings the process cannot start without.
// API and storage credentials are checked when a request first needs them.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return disol_errors.Configuration("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
