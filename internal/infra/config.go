package infra

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string
	DBLogLevel  string

	JWTSecret string
	TokenTTL  time.Duration

	// Master admin seeded at startup when both are set
	AdminLogin    string
	AdminPassword string

	// Calendar days for the ledger are cut at midnight in this zone
	LedgerTimezone string
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	EstimatorProvider string
	GeminiAPIKey      string
	GeminiModel       string
	OpenAIAPIKey      string
	OpenAIModel       string

	MenuCycleStart time.Time
	AllowedOrigins []string
	MaxUploadBytes int64
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		DBDriver:          strings.ToLower(getEnvWithDefault("DB_DRIVER", "postgres")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBLogLevel:        getEnvWithDefault("DB_LOG_LEVEL", "warn"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          getDurationWithDefault("TOKEN_TTL", 24*time.Hour),
		AdminLogin:        strings.TrimSpace(os.Getenv("ADMIN_LOGIN")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		LedgerTimezone:    getEnvWithDefault("LEDGER_TIMEZONE", "UTC"),
		SessionTTL:        getDurationWithDefault("SESSION_TTL", 5*time.Minute),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getIntWithDefault("REDIS_DB", 0),
		EstimatorProvider: getEnvWithDefault("ESTIMATOR_PROVIDER", "gemini"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		MaxUploadBytes:    int64(getIntWithDefault("MAX_UPLOAD_BYTES", 16<<20)),
	}

	if cfg.DatabaseURL == "" && cfg.DBDriver == "sqlite" {
		cfg.DatabaseURL = "school.db"
	}
	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET is not set; using an insecure development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}

	cycleStart := getEnvWithDefault("MENU_CYCLE_START", "2025-01-01")
	start, err := time.Parse("2006-01-02", cycleStart)
	if err != nil {
		log.Printf("Invalid MENU_CYCLE_START %q, using 2025-01-01: %v", cycleStart, err)
		start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	cfg.MenuCycleStart = start

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

// EstimatorCredentials returns the key and model for the configured provider.
func (c *Config) EstimatorCredentials() (string, string) {
	if strings.EqualFold(c.EstimatorProvider, "openai") {
		return c.OpenAIAPIKey, c.OpenAIModel
	}
	return c.GeminiAPIKey, c.GeminiModel
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
