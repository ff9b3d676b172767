// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Email transports
	SendGridAPIKey string
	SMTPServer     string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	FromEmail      string

	// Document bootstrap
	SampleCVPath string

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8000"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SMTPServer:     envOr("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:       envInt("SMTP_PORT", 587),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		FromEmail:      envOr("FROM_EMAIL", "noreply@example.com"),

		SampleCVPath: envOr("SAMPLE_CV_PATH", "sample_cv.txt"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.SMTPPort <= 0 {
		cfg.SMTPPort = 587
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
