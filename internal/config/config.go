package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	WindowSize     int           `env:"WINDOW_SIZE" envDefault:"30"`
	LookbackDays   int           `env:"LOOKBACK_DAYS" envDefault:"30"`
	CacheSize      int           `env:"CACHE_SIZE" envDefault:"100"`
	DataDir        string        `env:"DATA_DIR" envDefault:"inputData"`
	DatasetsFile   string        `env:"DATASETS_FILE" envDefault:"config/datasets.yaml"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	RequestsPerSec float64       `env:"REQUESTS_PER_SEC" envDefault:"5"`

	DBEnabled bool `env:"DB_ENABLED" envDefault:"false"`
	DB        DBConfig

	TelegramBotToken  string   `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatIDs   []int64  `env:"TELEGRAM_CHAT_IDS"`  // comma separated
	BroadcastDatasets []string `env:"BROADCAST_DATASETS"` // comma separated, empty means all
}

// DBConfig holds the record store connection settings
type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"panels"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
	return FromEnv(), nil
}

// FromEnv reads the configuration from the current environment only
func FromEnv() *Config {
	var cfg Config

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.WindowSize = getEnvIntWithDefault("WINDOW_SIZE", 30)
	cfg.LookbackDays = getEnvIntWithDefault("LOOKBACK_DAYS", 30)
	cfg.CacheSize = getEnvIntWithDefault("CACHE_SIZE", 100)
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "inputData")
	cfg.DatasetsFile = getEnvWithDefault("DATASETS_FILE", "config/datasets.yaml")
	cfg.RequestTimeout = getEnvDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	cfg.RequestsPerSec = getEnvFloatWithDefault("REQUESTS_PER_SEC", 5)

	cfg.DBEnabled = getEnvBoolWithDefault("DB_ENABLED", false)
	cfg.DB = DBConfig{
		Host:     getEnvWithDefault("DB_HOST", "localhost"),
		Port:     getEnvWithDefault("DB_PORT", "5432"),
		User:     getEnvWithDefault("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getEnvWithDefault("DB_NAME", "panels"),
		SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
	}

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatIDs = getEnvInt64List("TELEGRAM_CHAT_IDS")
	cfg.BroadcastDatasets = getEnvList("BROADCAST_DATASETS")

	return &cfg
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault accepts Go durations and, for compatibility,
// plain seconds
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt64List(key string) []int64 {
	var out []int64
	for _, part := range getEnvList(key) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn().Str("key", key).Str("value", part).Msg("Skipping invalid id")
			continue
		}
		out = append(out, id)
	}
	return out
}
