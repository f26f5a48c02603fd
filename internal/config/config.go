package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/efreitasn/marketsim/internal/domain"
)

// Config holds all runtime configuration for the market simulation.
// Monetary values are kept in cents internally; the environment accepts
// dollars.
type Config struct {
	LogLevel         string
	Seed             int64
	Rounds           int
	Traders          int
	Symbols          []string
	InitialCash      int64 // cents
	InitialQuantity  int64 // shares of each symbol per trader
	MaxOrderQuantity int64
	PriceRange       int64 // cents
	SeedPrice        int64 // cents
	DepthLevels      int
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	seed, err := getInt64("SEED", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	rounds, err := getInt("ROUNDS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid ROUNDS: %w", err)
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("invalid ROUNDS: must be positive")
	}

	traders, err := getInt("TRADERS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid TRADERS: %w", err)
	}
	if traders <= 0 {
		return nil, fmt.Errorf("invalid TRADERS: must be positive")
	}

	symbols := getList("SYMBOLS", []string{"ACME", "GLOBEX"})
	if len(symbols) == 0 {
		return nil, fmt.Errorf("invalid SYMBOLS: at least one symbol is required")
	}

	initialCash, err := getDollars("INITIAL_CASH", 10_000.00)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_CASH: %w", err)
	}
	if initialCash < 0 {
		return nil, fmt.Errorf("invalid INITIAL_CASH: must not be negative")
	}

	initialQuantity, err := getInt64("INITIAL_QUANTITY", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_QUANTITY: %w", err)
	}
	if initialQuantity < 0 {
		return nil, fmt.Errorf("invalid INITIAL_QUANTITY: must not be negative")
	}

	maxOrderQuantity, err := getInt64("MAX_ORDER_QUANTITY", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_ORDER_QUANTITY: %w", err)
	}
	if maxOrderQuantity < 2 {
		return nil, fmt.Errorf("invalid MAX_ORDER_QUANTITY: must be at least 2")
	}

	priceRange, err := getDollars("PRICE_RANGE", 5.00)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_RANGE: %w", err)
	}
	if priceRange <= 0 {
		return nil, fmt.Errorf("invalid PRICE_RANGE: must be positive")
	}

	seedPrice, err := getDollars("SEED_PRICE", 50.00)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_PRICE: %w", err)
	}
	if seedPrice <= 0 {
		return nil, fmt.Errorf("invalid SEED_PRICE: must be positive")
	}

	depthLevels, err := getInt("DEPTH_LEVELS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: %w", err)
	}
	if depthLevels <= 0 {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: must be positive")
	}

	return &Config{
		LogLevel:         logLevel,
		Seed:             seed,
		Rounds:           rounds,
		Traders:          traders,
		Symbols:          symbols,
		InitialCash:      initialCash,
		InitialQuantity:  initialQuantity,
		MaxOrderQuantity: maxOrderQuantity,
		PriceRange:       priceRange,
		SeedPrice:        seedPrice,
		DepthLevels:      depthLevels,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// getDollars parses a dollar amount from the environment and returns cents.
func getDollars(key string, defaultVal float64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return domain.DollarsToCents(defaultVal)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return domain.DollarsToCents(f)
}

func getList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
