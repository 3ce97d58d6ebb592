package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

const (
	DefaultPort        = "50310"
	DefaultMenuPath    = "menu.yaml"
	DefaultMaxSessions = 10000
)

// Config is read once at startup from the environment.
type Config struct {
	Port        string
	MenuPath    string
	DeliveryFee int64
	TaxRate     decimal.Decimal
	LogLevel    zapcore.Level
	MaxSessions int
}

// Load reads PORT, MENU_PATH, DELIVERY_FEE, TAX_RATE, LOG_LEVEL and
// MAX_SESSIONS.
// Unset or empty variables keep their defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", DefaultPort),
		MenuPath:    getenv("MENU_PATH", DefaultMenuPath),
		DeliveryFee: logic.DefaultDeliveryFee,
		TaxRate:     logic.DefaultTaxRate,
		LogLevel:    zapcore.InfoLevel,
		MaxSessions: DefaultMaxSessions,
	}

	if v := os.Getenv("DELIVERY_FEE"); v != "" {
		fee, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DELIVERY_FEE %q: %w", v, err)
		}
		if fee < 0 {
			return Config{}, fmt.Errorf("invalid DELIVERY_FEE %q: must not be negative", v)
		}
		cfg.DeliveryFee = fee
	}

	if v := os.Getenv("TAX_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TAX_RATE %q: %w", v, err)
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return Config{}, fmt.Errorf("invalid TAX_RATE %q: must be between 0 and 1", v)
		}
		cfg.TaxRate = rate
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MAX_SESSIONS %q: %w", v, err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("invalid MAX_SESSIONS %q: must be positive", v)
		}
		cfg.MaxSessions = n
	}

	return cfg, nil
}

// Pricing returns the cart pricing constants this config selects.
func (c Config) Pricing() logic.Pricing {
	return logic.Pricing{DeliveryFee: c.DeliveryFee, TaxRate: c.TaxRate}
}

// NewLogger builds the production zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
