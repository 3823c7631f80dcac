package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers understood by the repository factory.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port          string `validate:"required,numeric"`
	IsProduction  bool
	EnableDBCheck bool

	StorageDriver string `validate:"oneof=memory sqlite postgres"`
	SQLitePath    string `validate:"required_if=StorageDriver sqlite"`
	DatabaseURL   string `validate:"required_if=StorageDriver postgres"`
	MigrationsURL string

	LoanIDFormat    string `validate:"oneof=uuid ulid"`
	LoanFreeDays    int    `validate:"min=1"`
	LoanMaxTermDays int    `validate:"min=0"` // 0 disables the cap
	FineBaseFee     decimal.Decimal
	FinePerDayFee   decimal.Decimal
	// FineGatedReturns refuses returns while a fine is unpaid.
	FineGatedReturns bool

	CatalogSeedFile    string
	RateLimit          string `validate:"required"`
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("SQLITE_PATH", "circulation.db")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_URL", "file://migrations")
	v.SetDefault("LOAN_ID_FORMAT", "uuid")
	v.SetDefault("LOAN_FREE_DAYS", 10)
	v.SetDefault("LOAN_MAX_TERM_DAYS", 10)
	v.SetDefault("FINE_BASE_FEE", "5.00")
	v.SetDefault("FINE_PER_DAY_FEE", "0.50")
	v.SetDefault("FINE_GATED_RETURNS", true)
	v.SetDefault("CATALOG_SEED_FILE", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:    strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		DatabaseURL:      v.GetString("PGSQL_URL"),
		MigrationsURL:    v.GetString("MIGRATIONS_URL"),
		LoanIDFormat:     strings.ToLower(strings.TrimSpace(v.GetString("LOAN_ID_FORMAT"))),
		LoanFreeDays:     v.GetInt("LOAN_FREE_DAYS"),
		LoanMaxTermDays:  v.GetInt("LOAN_MAX_TERM_DAYS"),
		FineGatedReturns: v.GetBool("FINE_GATED_RETURNS"),
		CatalogSeedFile:  v.GetString("CATALOG_SEED_FILE"),
		RateLimit:        v.GetString("RATE_LIMIT"),
	}

	var err error
	if cfg.FineBaseFee, err = decimal.NewFromString(v.GetString("FINE_BASE_FEE")); err != nil {
		return nil, fmt.Errorf("invalid FINE_BASE_FEE: %w", err)
	}
	if cfg.FinePerDayFee, err = decimal.NewFromString(v.GetString("FINE_PER_DAY_FEE")); err != nil {
		return nil, fmt.Errorf("invalid FINE_PER_DAY_FEE: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.LoanMaxTermDays > 0 && cfg.LoanFreeDays > cfg.LoanMaxTermDays {
		log.Printf("Warning: LOAN_FREE_DAYS (%d) exceeds LOAN_MAX_TERM_DAYS (%d). Raising the cap.\n", cfg.LoanFreeDays, cfg.LoanMaxTermDays)
		cfg.LoanMaxTermDays = cfg.LoanFreeDays
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
