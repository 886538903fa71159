// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               int
	WebRoot            string
	AppEnv             string
	LogLevel           string
	ImageSweepSchedule string
	ImageSweepGrace    time.Duration
}

// IsDevelopment reports whether the app runs with developer conveniences
// such as the console log writer.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.AppEnv) {
	case "", "dev", "development":
		return true
	}
	return false
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg(".env not loaded")
	}
	return Config{
		Port:               getIntEnv("PORT", 8080),
		WebRoot:            getEnvOrDefault("WEB_ROOT", ""),
		AppEnv:             getEnvOrDefault("APP_ENV", "development"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		ImageSweepSchedule: getEnvOrDefault("IMAGE_SWEEP_SCHEDULE", ""),
		ImageSweepGrace:    getDurationEnv("IMAGE_SWEEP_GRACE", 24*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
