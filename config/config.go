package config

import (
	"os"
)

type Config struct {
	Environment   string
	ServerPort    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SessionSecret string
	SeedDemoData  bool
}

func Load() (*Config, error) {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "blogapp"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SeedDemoData:  getEnv("SEED_DEMO_DATA", "") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
