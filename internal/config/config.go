package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port                 string
	DBConn               string
	LogLevel             string
	JWTSecret            string
	StripeSecretKey      string
	StripeEndpointSecret string
	StripePriceID        string
	ServerURL            string
	UploadDir            string
	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	SenderEmail          string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		DBConn:               getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=donations sslmode=disable"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripeEndpointSecret: getEnv("STRIPE_ENDPOINT_SECRET", ""),
		StripePriceID:        getEnv("STRIPE_PRICE_ID", ""),
		ServerURL:            getEnv("SERVER_URL", "http://localhost:8080"),
		UploadDir:            getEnv("UPLOAD_DIR", "uploads/images"),
		SMTPHost:             getEnv("SMTP_HOST", "localhost"),
		SMTPPort:             getEnv("SMTP_PORT", "587"),
		SMTPUsername:         getEnv("SMTP_USERNAME", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		SenderEmail:          getEnv("SENDER_EMAIL", "noreply@donation-service.local"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeEndpointSecret == "" {
		return nil, fmt.Errorf("STRIPE_ENDPOINT_SECRET is required")
	}
	if cfg.StripePriceID == "" {
		return nil, fmt.Errorf("STRIPE_PRICE_ID is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
