package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the client and the development endpoint
type Config struct {
	// Remote endpoint
	GraphQLURL string

	// Logging
	LogLevel  string
	LogFormat string

	// Development endpoint
	DevServer DevServerConfig
}

// DevServerConfig holds configuration for the local GraphQL endpoint
type DevServerConfig struct {
	Port           string
	GinMode        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	JWT            JWTConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	JWTExpiresIn time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		GraphQLURL: getEnv("GRAPHQL_URL", "http://localhost:8000/graphql"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		DevServer: DevServerConfig{
			Port:           getEnv("PORT", "8000"),
			GinMode:        getEnv("GIN_MODE", "debug"),
			ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{}),
			JWT: JWTConfig{
				Secret:       getEnv("JWT_SECRET", "somesupersecretkey"),
				JWTExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", time.Hour),
			},
		},
	}
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the development endpoint runs in release mode
func (c *Config) IsProduction() bool {
	return c.DevServer.GinMode == "release"
}

// GetServerAddress returns the development endpoint listen address
func (c *Config) GetServerAddress() string {
	return ":" + c.DevServer.Port
}
