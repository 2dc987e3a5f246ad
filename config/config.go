package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SESConfig holds the AWS credentials used when EMAIL_PROVIDER is "ses".
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// Config holds all configuration for the application. It is loaded once at
// startup and passed to collaborators at construction time; nothing reads
// the environment after Load returns.
type Config struct {
	Environment string
	Port        string

	// SMTP transport
	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	UseTLS       bool

	// Sender identity and transport selection
	EmailProvider string // "smtp" (default), "ses", or "noop"
	FromAddress   string
	FromName      string
	SES           SESConfig

	TemplateDir        string
	CORSAllowedOrigins []string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          getenv("PORT", "8080"),
		SMTPServer:    os.Getenv("SMTP_SERVER"),
		SMTPPort:      getenvInt("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		UseTLS:        strings.ToLower(getenv("USE_TLS", "true")) == "true",
		EmailProvider: getenv("EMAIL_PROVIDER", "smtp"),
		FromAddress:   os.Getenv("EMAIL_FROM"),
		FromName:      os.Getenv("EMAIL_FROM_NAME"),
		SES: SESConfig{
			Region:             os.Getenv("AWS_REGION"),
			AccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
			InsecureSkipVerify: strings.ToLower(os.Getenv("SES_INSECURE_SKIP_VERIFY")) == "true",
		},
		TemplateDir:        getenv("TEMPLATE_DIR", "templates"),
		CORSAllowedOrigins: strings.Split(getenv("CORS_ALLOWED_ORIGINS", "*"), ","),
	}

	// Default sender identity is the SMTP account itself
	if cfg.FromAddress == "" {
		cfg.FromAddress = cfg.SMTPUsername
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, s, fallback)
		return fallback
	}
	return v
}
