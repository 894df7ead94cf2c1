package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost/export_orchestrator?sslmode=disable"`

	// Server
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// Content sources
	ContentRoot string `env:"CONTENT_ROOT" envDefault:"./content"`
	S3Bucket    string `env:"S3_BUCKET"`
	AWSRegion   string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Notifications
	WebhookURL string `env:"WEBHOOK_URL"`

	// Job execution
	DispatchInterval   time.Duration `env:"DISPATCH_INTERVAL" envDefault:"100ms"`
	ProcessingDeadline time.Duration `env:"PROCESSING_DEADLINE" envDefault:"10m"`

	// Logging
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
