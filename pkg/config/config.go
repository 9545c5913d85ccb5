package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the service.
type Config struct {
	Environment string
	Port        string

	// Record store
	StoreDriver string // "local", "postgres" or "sqlite"
	DataDir     string
	PostgresDSN string
	SQLitePath  string

	// Auth
	JWTSecret string

	// CORS
	AllowedOrigins []string

	// Reminder poller
	ReminderInterval time.Duration

	// LegacyOwnerlessTasks keeps tasks without an owner visible to every
	// user, matching data written before tasks carried an owner email.
	LegacyOwnerlessTasks bool

	// SeedDemo creates the demo account and organization on boot.
	SeedDemo bool

	Debug bool
}

// Load reads configuration from the environment, with .env files loaded per
// environment first.
func Load() *Config {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// Best-effort: a missing .env file is fine.
	switch env {
	case "production":
		_ = godotenv.Load(".env.production")
	default:
		_ = godotenv.Load(".env.local")
	}

	cfg := &Config{
		Environment:          getEnvWithDefault("ENVIRONMENT", "development"),
		Port:                 getEnvWithDefault("PORT", "3000"),
		StoreDriver:          getEnvWithDefault("STORE_DRIVER", "local"),
		DataDir:              getEnvWithDefault("DATA_DIR", "./data"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:           getEnvWithDefault("SQLITE_PATH", "team_planner.db"),
		JWTSecret:            getEnvWithDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		ReminderInterval:     getEnvDuration("REMINDER_INTERVAL", 60*time.Second),
		LegacyOwnerlessTasks: getEnvBool("LEGACY_OWNERLESS_TASKS", true),
		SeedDemo:             getEnvBool("SEED_DEMO", false),
		Debug:                getEnvBool("DEBUG", false),
	}

	allowedOrigins := getEnvWithDefault("ALLOWED_ORIGINS", "*")
	if allowedOrigins == "*" {
		cfg.AllowedOrigins = []string{"*"}
	} else {
		cfg.AllowedOrigins = strings.Split(allowedOrigins, ",")
	}

	if cfg.IsProduction() {
		cfg.Debug = false
	}

	return cfg
}

// Validate checks the configuration for fatal inconsistencies.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "local", "sqlite":
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.IsProduction() && c.JWTSecret == "your-secret-key-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }
func (c *Config) IsProduction() bool  { return c.Environment == "production" }

func getEnvWithDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
