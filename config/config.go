package config

import (
	"log"
	"os"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	Port          string
	Environment   string
	FrontendURL   string
	EmailHost     string
	EmailPort     string
	EmailUser     string
	EmailPass     string
	EmailFrom     string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "admin.db"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Port:          getEnv("PORT", "3002"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		EmailHost:     getEnv("EMAIL_HOST", ""),
		EmailPort:     getEnv("EMAIL_PORT", "465"),
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPass:     getEnv("EMAIL_PASS", ""),
		EmailFrom:     getEnv("EMAIL_FROM", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func ValidateConfig(cfg *Config) {
	if len(cfg.JWTSecret) < 32 {
		log.Printf("WARNING: JWT_SECRET should be at least 32 characters for security")
	}
	if cfg.Environment == "production" && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Fatalf("JWT_SECRET must be set in production")
	}
	if cfg.EmailHost == "" {
		log.Printf("EMAIL_HOST not set, outgoing email disabled")
	}
}
