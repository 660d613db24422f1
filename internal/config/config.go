// Package config reads the runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIURL      *url.URL
	Port        string
	GinMode     string
	LogFormat   string
	DSN         string
	CORSOrigins []string
	EnablePprof bool
	Redis       RedisConfig
}

// RedisConfig holds the settings for the revalidation fan-out.
//
// An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Enabled reports if a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first, variables already set take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		return Config{}, fmt.Errorf("environment variable API_URL must be set")
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		APIURL:      u,
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		DSN:         getEnv("DB_DSN", "data/agenzia-eventi.db"),
		CORSOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof: os.Getenv("ENABLE_PPROF") == "true",
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "agenzia-eventi:revalidate"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}

	return n, nil
}
