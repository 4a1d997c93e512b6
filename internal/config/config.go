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
	Auth     AuthConfig
	Search   SearchConfig
	Render   RenderConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	TestMode           bool
}

type DatabaseConfig struct {
	// Path is the directory holding the sqlite database file.
	Path string
}

type AuthConfig struct {
	JWTSecret      string
	GoogleClientID string
}

type SearchConfig struct {
	MaxResults int
}

type RenderConfig struct {
	// OutputDir is where infographic PNG artifacts are written.
	OutputDir string
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/infograph.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			TestMode:           getEnvAsBool("TEST_MODE", false),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "data/db"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", "change-me"),
			GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		},
		Search: SearchConfig{
			MaxResults: getEnvAsInt("SEARCH_MAX_RESULTS", 5),
		},
		Render: RenderConfig{
			OutputDir: getEnv("INFOGRAPHIC_PATH", "data/infographics"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
