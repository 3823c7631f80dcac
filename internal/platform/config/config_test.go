package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 10, cfg.LoanFreeDays)
	assert.Equal(t, 10, cfg.LoanMaxTermDays)
	assert.True(t, cfg.FineBaseFee.Equal(decimal.RequireFromString("5")))
	assert.True(t, cfg.FinePerDayFee.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, cfg.FineGatedReturns)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("SQLITE_PATH", "circulation.db")
	v.SetDefault("LOAN_ID_FORMAT", "uuid")
	v.SetDefault("LOAN_FREE_DAYS", 10)
	v.SetDefault("LOAN_MAX_TERM_DAYS", 10)
	v.SetDefault("FINE_BASE_FEE", "5.00")
	v.SetDefault("FINE_PER_DAY_FEE", "0.50")
	v.SetDefault("RATE_LIMIT", "100-M")
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "postgres with url",
			values: map[string]any{"STORAGE_DRIVER": "Postgres", "PGSQL_URL": "postgres://localhost/circ"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StoragePostgres, cfg.StorageDriver)
			},
		},
		{
			name:    "postgres without url",
			values:  map[string]any{"STORAGE_DRIVER": "postgres"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			values:  map[string]any{"STORAGE_DRIVER": "redis"},
			wantErr: true,
		},
		{
			name:    "unknown id format",
			values:  map[string]any{"LOAN_ID_FORMAT": "snowflake"},
			wantErr: true,
		},
		{
			name:    "zero free days",
			values:  map[string]any{"LOAN_FREE_DAYS": 0},
			wantErr: true,
		},
		{
			name:    "bad fee",
			values:  map[string]any{"FINE_BASE_FEE": "five"},
			wantErr: true,
		},
		{
			name:   "cap raised to default term",
			values: map[string]any{"LOAN_FREE_DAYS": 14, "LOAN_MAX_TERM_DAYS": 10},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 14, cfg.LoanMaxTermDays)
			},
		},
		{
			name:   "origins are trimmed",
			values: map[string]any{"CORS_ALLOWED_ORIGINS": " https://a.example , ,https://b.example"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := fromViper(newViper(tt.values))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
