package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverBolt     = "bolt"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	StoreDriver   string
	DatabaseURL   string
	EnableDBCheck bool
	BoltPath      string
	JWTSecret     string
	LogLevel      slog.Level

	CORSAllowedOrigins []string

	// Account directory
	AccountCacheTTL time.Duration
	ChartSeedFile   string

	// Balance replay
	ReplayPageSize          int
	ReplayMaxRecords        int
	ReplayWriteConcurrency  int
	ReplayTenantConcurrency int
	MaintenanceRateLimit    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("BOLT_PATH", "ledger.db")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	v.SetDefault("CHART_SEED_FILE", "")
	v.SetDefault("REPLAY_PAGE_SIZE", 500)
	v.SetDefault("REPLAY_MAX_RECORDS", 10000)
	v.SetDefault("REPLAY_WRITE_CONCURRENCY", 8)
	v.SetDefault("REPLAY_TENANT_CONCURRENCY", 4)
	v.SetDefault("MAINTENANCE_RATE_LIMIT", "6-M")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		StoreDriver:             strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:             v.GetString("PGSQL_URL"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		BoltPath:                v.GetString("BOLT_PATH"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		ChartSeedFile:           v.GetString("CHART_SEED_FILE"),
		ReplayPageSize:          v.GetInt("REPLAY_PAGE_SIZE"),
		ReplayMaxRecords:        v.GetInt("REPLAY_MAX_RECORDS"),
		ReplayWriteConcurrency:  v.GetInt("REPLAY_WRITE_CONCURRENCY"),
		ReplayTenantConcurrency: v.GetInt("REPLAY_TENANT_CONCURRENCY"),
		MaintenanceRateLimit:    v.GetString("MAINTENANCE_RATE_LIMIT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverBolt:
		if cfg.BoltPath == "" {
			return nil, fmt.Errorf("BOLT_PATH must be set when STORE_DRIVER is %q", StoreDriverBolt)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := v.GetString("ACCOUNT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
		log.Printf("Warning: Invalid value for ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.AccountCacheTTL = ttl

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.ReplayPageSize <= 0 || cfg.ReplayMaxRecords <= 0 {
		return nil, fmt.Errorf("REPLAY_PAGE_SIZE and REPLAY_MAX_RECORDS must be positive")
	}
	if cfg.ReplayWriteConcurrency <= 0 || cfg.ReplayTenantConcurrency <= 0 {
		return nil, fmt.Errorf("REPLAY_WRITE_CONCURRENCY and REPLAY_TENANT_CONCURRENCY must be positive")
	}

	return cfg, nil
}
