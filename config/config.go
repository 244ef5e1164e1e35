// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Assistant  AssistantConfig
	Categories CategoriesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string

	// Open transaction forms are dropped after FormSessionIdle without use,
	// and at most FormSessionLimit are kept.
	FormSessionLimit int
	FormSessionIdle  time.Duration
}

// DatabaseConfig holds the ledger database configuration.
// Driver is either "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration for the chat log mirror.
type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
	ChatKey  string
}

// AuthConfig holds bearer token configuration.
// An empty secret disables authentication on the API.
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// AssistantConfig holds the scripted assistant configuration.
// Responder is one of "static", "keyword" or "ledger".
type AssistantConfig struct {
	Responder        string
	ReplyDelay       time.Duration
	ReplyTimeout     time.Duration
	WelcomeMessage   string
	DefaultReply     string
	SupersedePending bool
	RateLimit        int
	RateWindow       time.Duration
}

// CategoriesConfig holds the category lists offered per transaction kind.
type CategoriesConfig struct {
	Income      []string
	Expense     []string
	AllowCustom bool
}

// Default assistant texts.
const (
	DefaultWelcomeMessage = "Hi there! I'm your financial assistant. How can I help you today?"
	DefaultAssistantReply = "I'm your financial assistant. How can I help you manage your money better?"
)

// Default category lists.
var (
	DefaultIncomeCategories  = []string{"Salary", "Bonus", "Investment", "Gift", "Other"}
	DefaultExpenseCategories = []string{"Food", "Transportation", "Housing", "Entertainment", "Utilities", "Shopping", "Health", "Other"}
)

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),

			FormSessionLimit: getEnvAsInt("FORM_SESSION_LIMIT", 1000),
			FormSessionIdle:  getEnvAsDuration("FORM_SESSION_IDLE", 30*time.Minute),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			URL:             getEnv("DATABASE_URL", "file:companion.db?_pragma=foreign_keys(1)"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			URL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			ChatKey:  getEnv("REDIS_CHAT_KEY", "companion:chat:log"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: getEnvAsDuration("JWT_EXPIRY", 30*24*time.Hour),
		},
		Assistant: AssistantConfig{
			Responder:        getEnv("ASSISTANT_RESPONDER", "ledger"),
			ReplyDelay:       getEnvAsDuration("ASSISTANT_REPLY_DELAY", time.Second),
			ReplyTimeout:     getEnvAsDuration("ASSISTANT_REPLY_TIMEOUT", 5*time.Second),
			WelcomeMessage:   getEnv("ASSISTANT_WELCOME_MESSAGE", DefaultWelcomeMessage),
			DefaultReply:     getEnv("ASSISTANT_DEFAULT_REPLY", DefaultAssistantReply),
			SupersedePending: getEnvAsBool("ASSISTANT_SUPERSEDE_PENDING", false),
			RateLimit:        getEnvAsInt("ASSISTANT_RATE_LIMIT", 30),
			RateWindow:       getEnvAsDuration("ASSISTANT_RATE_WINDOW", time.Minute),
		},
		Categories: CategoriesConfig{
			Income:      getEnvAsSlice("CATEGORIES_INCOME", DefaultIncomeCategories),
			Expense:     getEnvAsSlice("CATEGORIES_EXPENSE", DefaultExpenseCategories),
			AllowCustom: getEnvAsBool("CATEGORIES_ALLOW_CUSTOM", false),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsSlice reads a comma-separated list. Blank entries are dropped and an
// empty result falls back to the default.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return items
}
