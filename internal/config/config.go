package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Factory backend selectors
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string   // API key for the configuration/minting surface
	TrustedProxies []string // IPs whose X-Forwarded-For headers are honored
	LogLevel       string
	LogFormat      string
	Environment    string

	FactoryBackend string // "memory" or "postgres"
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	MigrateOnStart bool

	CatalogPath string // YAML option catalog applied at startup; empty skips
	EngineSeed  string // initial seed as a decimal or 0x-prefixed hex integer; empty draws a random one
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		FactoryBackend: getEnv("FACTORY_BACKEND", BackendMemory),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "lootbox"),
		CatalogPath:    getEnv("CATALOG_PATH", ""),
		EngineSeed:     getEnv("ENGINE_SEED", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START value: %w", err)
	}
	cfg.MigrateOnStart = migrate

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.FactoryBackend {
	case BackendMemory, BackendPostgres:
	default:
		return nil, fmt.Errorf("invalid FACTORY_BACKEND value %q", cfg.FactoryBackend)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
