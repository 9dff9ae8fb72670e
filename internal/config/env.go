package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds process settings read from the environment (and a .env file if present).
type Env struct {
	ConfigPath string
	LogLevel   string
	LogPretty  bool
	Addr       string
}

// LoadEnv reads TAXFLOW_* variables. A missing .env file is not an error.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		ConfigPath: getEnv("TAXFLOW_CONFIG", DefaultFileName),
		LogLevel:   getEnv("TAXFLOW_LOG_LEVEL", "warn"),
		LogPretty:  getEnvAsBool("TAXFLOW_LOG_PRETTY", true),
		Addr:       getEnv("TAXFLOW_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
