// internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	// TokenFile is where the bearer token is persisted between runs.
	// An absent file means logged out.
	TokenFile string
}

type LoggingConfig struct {
	Development bool
}

// Load reads configuration from the environment, with an optional
// .env file providing values the environment does not.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	tokenFile := getEnv("TASKPANEL_TOKEN_FILE", "")
	if tokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		tokenFile = filepath.Join(dir, "taskpanel", "token")
	}

	return &Config{
		API: APIConfig{
			BaseURL: getEnv("TASKPANEL_API_URL", "http://localhost:8080/api"),
			Timeout: getEnvAsDuration("TASKPANEL_HTTP_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			TokenFile: tokenFile,
		},
		Logging: LoggingConfig{
			Development: getEnv("TASKPANEL_ENV", "development") == "development",
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}
