// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// JWT Configuration
	JWTSecretKey   string        `mapstructure:"JWT_SECRET_KEY"`
	JWTTokenExpiry time.Duration `mapstructure:"JWT_TOKEN_EXPIRY_DAYS"`

	// OTP Configuration
	OTPExpiry time.Duration `mapstructure:"OTP_EXPIRY_MINUTES"`

	// SMTP / Email Configuration
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`

	// Google OAuth Configuration
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`

	// OAuth state cookie settings
	OAuthStateCookieName     string `mapstructure:"OAUTH_STATE_COOKIE_NAME"`
	OAuthCookieMaxAgeMinutes int    `mapstructure:"OAUTH_COOKIE_MAX_AGE_MINUTES"`
	OAuthCookieDomain        string `mapstructure:"OAUTH_COOKIE_DOMAIN"`
	OAuthCookieSecure        bool   `mapstructure:"OAUTH_COOKIE_SECURE"`

	// Client redirect targets for the OAuth callback result.
	ClientSuccessURL string `mapstructure:"CLIENT_SUCCESS_URL"`
	ClientFailureURL string `mapstructure:"CLIENT_FAILURE_URL"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	// Set default values
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "notes_app_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_TOKEN_EXPIRY_DAYS", 30)

	v.SetDefault("OTP_EXPIRY_MINUTES", 10)

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/users/oauth/callback")

	v.SetDefault("OAUTH_STATE_COOKIE_NAME", "oauth_state")
	v.SetDefault("OAUTH_COOKIE_MAX_AGE_MINUTES", 10)
	v.SetDefault("OAUTH_COOKIE_DOMAIN", "")
	v.SetDefault("OAUTH_COOKIE_SECURE", false)

	v.SetDefault("CLIENT_SUCCESS_URL", "http://localhost:5173/auth/callback")
	v.SetDefault("CLIENT_FAILURE_URL", "http://localhost:5173/signin?error=oauth")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.JWTTokenExpiry = time.Duration(v.GetInt("JWT_TOKEN_EXPIRY_DAYS")) * 24 * time.Hour
	cfg.OTPExpiry = time.Duration(v.GetInt("OTP_EXPIRY_MINUTES")) * time.Minute

	// Basic validation for critical configs
	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		return nil, fmt.Errorf("FATAL: JWT_SECRET_KEY is not set. Tokens cannot be signed without it")
	}

	return &cfg, nil
}
