package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Business rules
	AllowSharedHouses      bool
	DefaultGracePeriodDays int
	LateFeeDailyRate       decimal.Decimal
	PhoneDefaultRegion     string

	// Webhook deduplication cache; empty RedisAddr disables it
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Payment gateway
	PaymentGatewayURL    string
	PaymentGatewayAPIKey string
	PaymentWebhookSecret string

	// Email notifications; empty SMTPHost falls back to log-only notifications
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "property-management-app")
	v.SetDefault("ALLOW_SHARED_HOUSES", false)
	v.SetDefault("DEFAULT_GRACE_PERIOD_DAYS", 5)
	v.SetDefault("LATE_FEE_DAILY_RATE", "0.05")
	v.SetDefault("PHONE_DEFAULT_REGION", "KE")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PAYMENT_GATEWAY_URL", "")
	v.SetDefault("PAYMENT_GATEWAY_API_KEY", "")
	v.SetDefault("PAYMENT_WEBHOOK_SECRET", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "no-reply@localhost")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// e.g. "60m", "1h"
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.DefaultGracePeriodDays = v.GetInt("DEFAULT_GRACE_PERIOD_DAYS")
	if cfg.DefaultGracePeriodDays < 0 {
		log.Printf("Warning: DEFAULT_GRACE_PERIOD_DAYS must not be negative. Defaulting to 5.\n")
		cfg.DefaultGracePeriodDays = 5
	}

	rateStr := v.GetString("LATE_FEE_DAILY_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		rate = decimal.RequireFromString("0.05")
		log.Printf("Warning: Invalid value for LATE_FEE_DAILY_RATE ('%s'). Defaulting to %s.\n", rateStr, rate)
	}
	cfg.LateFeeDailyRate = rate

	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	cfg.AllowSharedHouses = v.GetBool("ALLOW_SHARED_HOUSES")
	cfg.PhoneDefaultRegion = strings.ToUpper(v.GetString("PHONE_DEFAULT_REGION"))
	cfg.RedisAddr = v.GetString("REDIS_ADDR")
	cfg.RedisPassword = v.GetString("REDIS_PASSWORD")
	cfg.RedisDB = v.GetInt("REDIS_DB")
	cfg.PaymentGatewayURL = v.GetString("PAYMENT_GATEWAY_URL")
	cfg.PaymentGatewayAPIKey = v.GetString("PAYMENT_GATEWAY_API_KEY")
	cfg.PaymentWebhookSecret = v.GetString("PAYMENT_WEBHOOK_SECRET")
	cfg.SMTPHost = v.GetString("SMTP_HOST")
	cfg.SMTPPort = v.GetInt("SMTP_PORT")
	cfg.SMTPUsername = v.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = v.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = v.GetString("SMTP_FROM")
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if cfg.IsProduction && cfg.PaymentWebhookSecret == "" {
		log.Println("Warning: PAYMENT_WEBHOOK_SECRET not set. Gateway callbacks will not be authenticated.")
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
