// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"minibank/pkg/db"

	"github.com/joho/godotenv"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort  string
	DB          db.Config
	JWTSecret   string
	JWTValidity time.Duration
}

// LoadConfig loads configuration from a .env file (when present) and from
// environment variables, with local-development defaults.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; environment variables take over.
	_ = godotenv.Load()

	serverPort := getEnv("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	jwtValidityMin, err := strconv.Atoi(getEnv("JWT_VALIDITY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_VALIDITY_MINUTES: %w", err)
	}

	return &AppConfig{
		ServerPort:  serverPort,
		JWTSecret:   getEnv("JWT_SECRET", "your_jwt_secret"),
		JWTValidity: time.Duration(jwtValidityMin) * time.Minute,
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "bank_user"),
			Password: getEnv("DB_PASSWORD", "securepassword"),
			DBName:   getEnv("DB_NAME", "banking_app"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
