package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Thushyanthini0507/artzyra-server/internal/gateway"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/database"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
)

// Config holds all configuration for the Artzyra server. Values come from
// environment variables with the ARTZYRA_ prefix, with sensible defaults for
// local development.
type Config struct {
	Port   string
	AppEnv string

	Postgres      database.PostgresConfig
	MigrationsDir string

	JWTSecret    string
	JWTAccessTTL time.Duration

	KafkaBrokers          []string
	PaymentConsumerGroup  string
	NotifierConsumerGroup string

	RedisAddr     string
	RedisPassword string

	RateLimit middleware.RateLimitConfig

	PayHere    gateway.PayHereConfig
	Cloudinary gateway.CloudinaryConfig

	CancellationWindowHours int

	CORSAllowedOrigins []string
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARTZYRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "artzyra")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetDefault("JWT_ACCESS_TTL", "24h")

	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("PAYMENT_CONSUMER_GROUP", "artzyra-booking-payments")
	v.SetDefault("NOTIFIER_CONSUMER_GROUP", "artzyra-notifier")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	v.SetDefault("PAYHERE_BASE_URL", "https://sandbox.payhere.lk")
	v.SetDefault("CLOUDINARY_FOLDER", "artzyra")

	v.SetDefault("CANCELLATION_WINDOW_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg := &Config{
		Port:   v.GetString("PORT"),
		AppEnv: v.GetString("APP_ENV"),
		Postgres: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		MigrationsDir:         v.GetString("MIGRATIONS_DIR"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTAccessTTL:          v.GetDuration("JWT_ACCESS_TTL"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		PaymentConsumerGroup:  v.GetString("PAYMENT_CONSUMER_GROUP"),
		NotifierConsumerGroup: v.GetString("NOTIFIER_CONSUMER_GROUP"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RateLimit: middleware.RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			Limit:   v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:  v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		PayHere: gateway.PayHereConfig{
			BaseURL:    v.GetString("PAYHERE_BASE_URL"),
			MerchantID: v.GetString("PAYHERE_MERCHANT_ID"),
			AppSecret:  v.GetString("PAYHERE_APP_SECRET"),
		},
		Cloudinary: gateway.CloudinaryConfig{
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
			Folder:    v.GetString("CLOUDINARY_FOLDER"),
		},
		CancellationWindowHours: v.GetInt("CANCELLATION_WINDOW_HOURS"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("ARTZYRA_JWT_SECRET is required")
	}
	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
