package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	ServerPort string `validate:"required,numeric"`
	SiteURL    string `validate:"required,url"`
	MaxBodyMB  int    `validate:"min=1"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSSLMode  string `validate:"oneof=disable require verify-ca verify-full"`

	S3Region        string `validate:"required"`
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
	GalleryBucket   string `validate:"required"`
	AssetsBucket    string `validate:"required,nefield=GalleryBucket"`

	AdminEmail    string        `validate:"required,email"`
	AdminPassword string        `validate:"required"`
	SessionTTL    time.Duration `validate:"min=1m"`

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	BrochureDir string `validate:"required"`
	PublicDir   string `validate:"required"`
	CORSOrigins string

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	SweepInterval time.Duration
	SweepGrace    time.Duration `validate:"min=1m"`
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, err := getDuration("SESSION_TTL", 720*time.Hour)
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getDuration("SWEEP_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}
	sweepGrace, err := getDuration("SWEEP_GRACE", time.Hour)
	if err != nil {
		return nil, err
	}
	maxBody, err := strconv.Atoi(getEnv("MAX_BODY_MB", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_BODY_MB: %w", err)
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		SiteURL:    strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		MaxBodyMB:  maxBody,

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "isha_stone"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		GalleryBucket:   getEnv("S3_GALLERY_BUCKET", "natural-stones"),
		AssetsBucket:    getEnv("S3_ASSETS_BUCKET", "site-assets"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@ishastoneanddecor.com"),
		AdminPassword: getSecret("ADMIN_PASSWORD", "Admin@123"),
		SessionTTL:    sessionTTL,

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getSecret("SMTP_PASSWORD", ""),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Isha Stone & Decor"),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),

		BrochureDir: getEnv("BROCHURE_DIR", "./public/brochures"),
		PublicDir:   getEnv("PUBLIC_DIR", "./public"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),

		SweepInterval: sweepInterval,
		SweepGrace:    sweepGrace,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints declared in struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetDBConnString builds the lib/pq connection string.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MailEnabled reports whether enough SMTP settings exist to send mail.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFromEmail != ""
}

// AllowedOrigins returns CORS_ORIGINS or the site URL when unset.
func (c *Config) AllowedOrigins() string {
	if c.CORSOrigins != "" {
		return c.CORSOrigins
	}
	return c.SiteURL
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// getSecret is getEnv without trimming: passwords are compared byte for byte.
func getSecret(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
