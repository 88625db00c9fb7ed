package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	DFPNMaxSteps      int

	// DecisionCacheSize is the number of cached decisions, 0 disables the cache
	DecisionCacheSize int
}

// LoadServerConfig loads configuration from environment variables.
// Values from a .env file in the working directory are loaded first, if the file exists.
func LoadServerConfig() *ServerConfig {
	LoadDotEnv()

	return &ServerConfig{
		ServerHost:        getEnvMust("CUBELLO_SERVER_HOST"),
		ServerPort:        getEnvMust("CUBELLO_SERVER_PORT"),
		RedisURL:          os.Getenv("CUBELLO_REDIS_URL"),
		PostgresURL:       os.Getenv("CUBELLO_POSTGRES_URL"),
		BasicAuthUsername: os.Getenv("CUBELLO_BASIC_AUTH_USER"),
		BasicAuthPassword: os.Getenv("CUBELLO_BASIC_AUTH_PASS"),
		Token:             os.Getenv("CUBELLO_TOKEN"),
		Prefork:           getEnvMustBool("CUBELLO_PREFORK", false),
		DFPNMaxSteps:      getEnvMustInt("CUBELLO_DFPN_MAX_STEPS", 0),
		DecisionCacheSize: getEnvMustInt("CUBELLO_DECISION_CACHE_SIZE", 0),
	}
}

// HasAuth returns whether any credentials are configured.
func (cfg *ServerConfig) HasAuth() bool {
	return cfg.Token != "" || cfg.BasicAuthUsername != ""
}

type ClientConfig struct {
	ServerURL string
	Token     string
}

func LoadClientConfig() *ClientConfig {
	LoadDotEnv()

	return &ClientConfig{
		ServerURL: getEnvMust("CUBELLO_SERVER_URL"),
		Token:     os.Getenv("CUBELLO_TOKEN"),
	}
}

// LoadDotEnv loads a .env file if there is one. Existing environment variables are not overwritten.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string, fallback bool) bool {
	value, err := parseBool(os.Getenv(key), fallback)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "error", err)
		os.Exit(1)
	}
	return value
}

func getEnvMustInt(key string, fallback int) int {
	value, err := parseInt(os.Getenv(key), fallback)
	if err != nil {
		slog.Error("Cannot load environment variable", "key", key, "error", err)
		os.Exit(1)
	}
	return value
}

func parseBool(value string, fallback bool) (bool, error) {
	switch value {
	case "":
		return fallback, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("value %q must be \"true\" or \"false\"", value)
	}
}

func parseInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number: %w", value, err)
	}

	if number < 0 {
		return 0, fmt.Errorf("value %d must not be negative", number)
	}

	return number, nil
}
