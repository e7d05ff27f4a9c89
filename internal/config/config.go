package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/bilgisen/tldr-relay/internal/models"
)

// Ledger backends
const (
	LedgerRedis   = "redis"
	LedgerUpstash = "upstash"
	LedgerMemory  = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `validate:"required,numeric"`
	Env             string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	HTTPTimeout     time.Duration `validate:"gt=0"`

	// Source site
	SourceBaseURL string        `validate:"required,url"`
	FetchTimeout  time.Duration `validate:"gt=0"`
	Timezone      string        `validate:"required,timezone"`

	// Publication ledger
	LedgerBackend string `validate:"oneof=redis upstash memory"`
	RedisURL      string `validate:"required_if=LedgerBackend redis"`
	RedisPrefix   string
	UpstashURL    string        `validate:"required_if=LedgerBackend upstash"`
	UpstashToken  string        `validate:"required_if=LedgerBackend upstash"`
	MarkerTTL     time.Duration `validate:"gt=0"`

	// Delivery
	Webhooks       map[models.Category]string `validate:"min=1,dive,url"`
	HeaderDelay    time.Duration              `validate:"gte=0"`
	ArticleDelay   time.Duration              `validate:"gte=0"`
	EnrichPreviews bool
	PreviewTimeout time.Duration `validate:"gt=0"`

	// Run reports
	StoragePath string `validate:"required"`
	R2Endpoint  string `validate:"omitempty,url"`
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string
	R2AccountID string

	// Logging
	LogLevel  string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile   string
	LogPretty bool

	// Security
	AdminAPIKey string
}

// Load loads configuration from .env and the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Source site
		SourceBaseURL: getEnv("SOURCE_BASE_URL", "https://tldr.tech"),
		FetchTimeout:  getEnvAsDuration("FETCH_TIMEOUT", 15*time.Second),
		Timezone:      getEnv("PUBLISH_TIMEZONE", "America/Los_Angeles"),

		// Publication ledger
		LedgerBackend: strings.ToLower(getEnv("LEDGER_BACKEND", LedgerRedis)),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "tldr:posted:"),
		UpstashURL:    getEnv("KV_REST_API_URL", ""),
		UpstashToken:  getEnv("KV_REST_API_TOKEN", ""),
		MarkerTTL:     getEnvAsDuration("MARKER_TTL", 48*time.Hour),

		// Delivery
		Webhooks:       loadWebhooks(),
		HeaderDelay:    getEnvAsDuration("HEADER_DELAY", time.Second),
		ArticleDelay:   getEnvAsDuration("ARTICLE_DELAY", 1500*time.Millisecond),
		EnrichPreviews: getEnvAsBool("ENRICH_PREVIEWS", false),
		PreviewTimeout: getEnvAsDuration("PREVIEW_TIMEOUT", 5*time.Second),

		// Run reports
		StoragePath: getEnv("STORAGE_PATH", "./data"),
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", ""),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Logging
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Location resolves the reference timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WebhookFor returns the webhook of category, if configured.
func (c *Config) WebhookFor(category models.Category) (string, bool) {
	url, ok := c.Webhooks[category]
	return url, ok
}

// loadWebhooks maps categories to DISCORD_WEBHOOK_<CATEGORY>_URL, falling
// back to DISCORD_WEBHOOK_URL for categories without their own webhook.
func loadWebhooks() map[models.Category]string {
	fallback := getEnv("DISCORD_WEBHOOK_URL", "")
	hooks := make(map[models.Category]string)
	for _, c := range models.AllCategories() {
		key := fmt.Sprintf("DISCORD_WEBHOOK_%s_URL", strings.ToUpper(string(c)))
		if url := getEnv(key, fallback); url != "" {
			hooks[c] = url
		}
	}
	return hooks
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
