package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	GitHub   GitHubConfig
	Session  SessionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type GitHubConfig struct {
	APIURL string
	RawURL string
}

type SessionConfig struct {
	Secret                string
	TTLMinutes            int
	ReaperIntervalSeconds int
}

type LogConfig struct {
	Level string
}

// DefaultSessionSecret signs session cookies when SESSION_SECRET is unset
const DefaultSessionSecret = "default-secret-key"

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "file:ghdash?mode=memory&cache=shared"),
		},
		GitHub: GitHubConfig{
			APIURL: withTrailingSlash(getEnv("GITHUB_API_URL", "https://api.github.com/")),
			RawURL: withTrailingSlash(getEnv("GITHUB_RAW_URL", "https://raw.githubusercontent.com/")),
		},
		Session: SessionConfig{
			Secret:                getEnv("SESSION_SECRET", DefaultSessionSecret),
			TTLMinutes:            getEnvAsInt("SESSION_TTL_MINUTES", 60),
			ReaperIntervalSeconds: getEnvAsInt("SESSION_REAPER_INTERVAL_SECONDS", 300),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return nil
}

// UsesDefaultSecret reports whether session cookies are signed with the built-in secret
func (c SessionConfig) UsesDefaultSecret() bool {
	return c.Secret == DefaultSessionSecret
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// go-github resolves relative paths against the base URL, which must end in a slash
func withTrailingSlash(url string) string {
	if strings.HasSuffix(url, "/") {
		return url
	}
	return url + "/"
}
