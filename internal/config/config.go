package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	GinMode            string
	DBDriver           string
	DBPath             string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	SessionSecret      string
	DefaultLanguage    string
	SupportedLanguages []string
	AllowedOrigins     []string
	LoginRateLimit     int
	LoginRateWindow    time.Duration
	OpenAIAPIKey       string
}

func Load() *Config {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBPath:             getEnv("DB_PATH", "todo.db"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "todouser"),
		DBPassword:         getEnv("DB_PASSWORD", "todopassword"),
		DBName:             getEnv("DB_NAME", "todo"),
		RedisHost:          getEnv("REDIS_HOST", ""),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		SessionSecret:      getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		DefaultLanguage:    getEnv("DEFAULT_LANGUAGE", "ru"),
		SupportedLanguages: splitList(getEnv("SUPPORTED_LANGUAGES", "ru,en")),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:8080")),
		LoginRateLimit:     parseInt(getEnv("LOGIN_RATE_LIMIT", "10"), 10),
		LoginRateWindow:    parseDuration(getEnv("LOGIN_RATE_WINDOW", "1m"), time.Minute),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
	}
}

// RedisEnabled reports whether a Redis server is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
