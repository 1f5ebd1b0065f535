package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Auth provider (Clerk). The webhook secret and secret key are checked when used, not at startup.
	AuthIssuerDomain      string `mapstructure:"CLERK_ISSUER_DOMAIN"`
	WebhookSecret         string `mapstructure:"CLERK_WEBHOOK_SECRET"`
	InvitationAPIKey      string `mapstructure:"CLERK_SECRET_KEY"`
	InvitationAPIURL      string `mapstructure:"CLERK_API_URL"`
	InvitationRedirectURL string `mapstructure:"INVITATION_REDIRECT_URL"`
	JWTSecret             string

	// Business calendar: "today" and date filters are evaluated in this zone.
	BusinessTimezone   string
	BusinessLocation   *time.Location
	DefaultPhoneRegion string

	CORSAllowedOrigins []string
	RateLimit          string
	RedisURL           string
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("CLERK_ISSUER_DOMAIN", "")
	viper.SetDefault("CLERK_WEBHOOK_SECRET", "")
	viper.SetDefault("CLERK_SECRET_KEY", "")
	viper.SetDefault("CLERK_API_URL", "https://api.clerk.com/v1")
	viper.SetDefault("INVITATION_REDIRECT_URL", "http://localhost:3000/sign-up")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DEFAULT_PHONE_REGION", "IN")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.BusinessTimezone = viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		log.Printf("Warning: Invalid value for BUSINESS_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.BusinessTimezone)
		cfg.BusinessTimezone = "UTC"
		loc = time.UTC
	}
	cfg.BusinessLocation = loc

	cfg.AuthIssuerDomain = viper.GetString("CLERK_ISSUER_DOMAIN")
	cfg.WebhookSecret = viper.GetString("CLERK_WEBHOOK_SECRET")
	cfg.InvitationAPIKey = viper.GetString("CLERK_SECRET_KEY")
	cfg.InvitationAPIURL = strings.TrimRight(viper.GetString("CLERK_API_URL"), "/")
	cfg.InvitationRedirectURL = viper.GetString("INVITATION_REDIRECT_URL")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")

	if cfg.AuthIssuerDomain == "" {
		log.Println("Warning: CLERK_ISSUER_DOMAIN not set. Token issuer will not be checked.")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Authenticated API routes will reject every request.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DefaultPhoneRegion = strings.ToUpper(viper.GetString("DEFAULT_PHONE_REGION"))
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
