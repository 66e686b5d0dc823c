package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Groq      GroqConfig
	SMTP      SMTPConfig
	Storage   StorageConfig
	Scheduler SchedulerConfig
	Roster    RosterConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"orbitmeet"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// GroqConfig holds model provider configuration
type GroqConfig struct {
	APIKey      string  `envconfig:"GROQ_API_KEY"`
	BaseURL     string  `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model       string  `envconfig:"GROQ_MODEL" default:"openai/gpt-oss-20b"`
	Temperature float64 `envconfig:"GROQ_TEMPERATURE" default:"0.2"`
}

// SMTPConfig holds mail relay configuration
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	Port     int    `envconfig:"SMTP_PORT" default:"465"`
	Email    string `envconfig:"SMTP_EMAIL"`
	Password string `envconfig:"SMTP_PASSWORD"`
	Enabled  bool   `envconfig:"SMTP_ENABLED" default:"true"`
}

// StorageConfig holds object storage configuration for raw file archiving
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"orbitmeet-transcripts"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// SchedulerConfig holds catch-up scheduler configuration
type SchedulerConfig struct {
	Enabled bool   `envconfig:"SCHEDULER_ENABLED" default:"true"`
	Spec    string `envconfig:"SCHEDULER_SPEC" default:"@hourly"`
}

// RosterConfig holds participant roster configuration
type RosterConfig struct {
	Path string `envconfig:"PARTICIPANT_DB_PATH" default:"SampleData/participants_database.csv"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration. Missing required values are fatal at
// startup; the process never comes up partially configured.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	if c.SMTP.Enabled {
		if c.SMTP.Email == "" {
			return fmt.Errorf("SMTP_EMAIL is required when SMTP_ENABLED is true")
		}
		if c.SMTP.Password == "" {
			return fmt.Errorf("SMTP_PASSWORD is required when SMTP_ENABLED is true")
		}
	}
	return nil
}

// ServerAddr returns the host:port the HTTP server binds to.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
