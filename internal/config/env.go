package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables overriding settings.
const (
	EnvLogLevel       = "MUSICBOOK_LOG_LEVEL"
	EnvLogFile        = "MUSICBOOK_LOG_FILE"
	EnvScrollSettleMS = "MUSICBOOK_SCROLL_SETTLE_MS"
	EnvMediaBaseURI   = "MUSICBOOK_MEDIA_BASE_URI"
)

// LoadEnv loads the given .env files (".env" in the working directory if
// none are given) into the environment. Variables already set are kept. A
// missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides settings from the environment.
func (s *Settings) ApplyEnv() {
	s.LogLevel = getEnv(EnvLogLevel, s.LogLevel)
	s.LogFile = getEnv(EnvLogFile, s.LogFile)
	s.ScrollSettleMS = getEnvInt(EnvScrollSettleMS, s.ScrollSettleMS)
	s.MediaBaseURI = getEnv(EnvMediaBaseURI, s.MediaBaseURI)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
