package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/Govind-619/ClipCraft/utils"
	"github.com/joho/godotenv"
)

const defaultSessionSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Port string
	Env  string

	// Video providers
	FalKey            string
	FalHost           string
	FalAPIHost        string
	ReplicateAPIToken string
	ReplicateAPIURL   string

	// Payment gateway
	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	// Email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	AdminEmail   string

	// Auth
	SessionSecret      string
	BaseURL            string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Database (optional)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// HTTP
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	LogDir         string

	// Notices and Warnings are collected while loading, before the logger
	// exists. main logs them once utils.InitLogger has run.
	Notices  []string
	Warnings []string
}

// LoadConfig loads configuration from .env and the environment.
// A missing .env file is not an error.
func LoadConfig() (*Config, error) {
	env := &envReader{}
	if err := godotenv.Load(); err != nil {
		env.notices = append(env.notices, fmt.Sprintf("No .env file loaded, using environment only: %v", err))
	}

	cfg := &Config{
		Port: getEnv("PORT", utils.DefaultPort),
		Env:  getEnv("ENV", "development"),

		FalKey:            os.Getenv("FAL_KEY"),
		FalHost:           getEnv("FAL_HOST", "queue.fal.run"),
		FalAPIHost:        getEnv("FAL_API_HOST", "api.fal.ai"),
		ReplicateAPIToken: os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateAPIURL:   getEnv("REPLICATE_API_URL", "https://api.replicate.com/v1"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     env.getInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		AdminEmail:   getEnv("ADMIN_EMAIL", "admin@aivideogen.com"),

		SessionSecret:      os.Getenv("NEXTAUTH_SECRET"),
		BaseURL:            getEnv("NEXT_PUBLIC_BASE_URL", "http://localhost:3000"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RateLimitRPS:   env.getFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: env.getInt("RATE_LIMIT_BURST", 5),
		LogDir:         getEnv("LOG_DIR", "logs"),
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.SessionSecret == "" {
		env.warn("NEXTAUTH_SECRET not set, using default key")
		cfg.SessionSecret = defaultSessionSecret
	}

	cfg.Notices, cfg.Warnings = env.notices, env.warnings
	return cfg, nil
}

// DatabaseEnabled reports whether Postgres should back the stores
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

// GoogleEnabled reports whether Google sign-in is configured
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// CORSOrigins is the configured origin list, or the site's own origin
// (scheme://host of BaseURL) when none is configured
func (c *Config) CORSOrigins() []string {
	if len(c.AllowedOrigins) > 0 {
		return c.AllowedOrigins
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return []string{u.Scheme + "://" + u.Host}
}

// EmailConfig returns the SMTP settings for the mailer
func (c *Config) EmailConfig() utils.EmailConfig {
	return utils.EmailConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUser,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed variables and remembers what it had to fall back on
type envReader struct {
	notices  []string
	warnings []string
}

func (r *envReader) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *envReader) getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.warn("Invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func (r *envReader) getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.warn("Invalid number for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
