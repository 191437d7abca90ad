package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBDriver   string // postgres, mysql or sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTKey          string
	AdminServiceKey string // elevated key required for admin/mutation endpoints

	AllowedOrigins string

	RateLimitMax       int
	RateLimitWindowSec int

	WebhookURL    string
	EmailSender   string
	EmailPassword string // SMTP app password
	NotifyEmail   string

	StatsSnapshotEnabled bool
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "3000"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "feedback"),

		JWTKey:          getEnv("JWT_SECRET_KEY", "defaultSecret"),
		AdminServiceKey: getEnv("ADMIN_SERVICE_KEY", ""),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		RateLimitMax:       getEnvInt("RATE_LIMIT_MAX", 20),
		RateLimitWindowSec: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		WebhookURL:    getEnv("FEEDBACK_WEBHOOK_URL", ""),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),
		NotifyEmail:   getEnv("NOTIFY_EMAIL", ""),

		StatsSnapshotEnabled: getEnv("STATS_SNAPSHOT_CRON", "0") == "1",
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AdminServiceKey == "" {
		log.Println("Warning: ADMIN_SERVICE_KEY is not set. Admin operations are disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
