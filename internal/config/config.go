package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	BackendMongo = "mongo"
	BackendFile  = "file"
)

type Config struct {
	HTTPPort           string
	StoreBackend       string
	MongoURI           string
	MongoDBName        string
	DataFile           string
	RedisAddr          string
	RedisPassword      string
	SectionsCacheTTL   time.Duration
	KafkaBrokers       []string
	CatalogTopic       string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	CartIdleTTL        time.Duration
	TaxRate            decimal.Decimal
	SeedDefaults       bool
	LogLevel           string
}

// Load reads an optional .env file, then the environment. Variables already set
// in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var errs []error
	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		StoreBackend:       getEnv("STORE_BACKEND", BackendMongo),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:        getEnv("MONGO_DB_NAME", "storefront"),
		DataFile:           getEnv("DATA_FILE", "data/top-viral-products.json"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		SectionsCacheTTL:   getDuration("SECTIONS_CACHE_TTL", 5*time.Minute, &errs),
		KafkaBrokers:       getList("KAFKA_BROKERS"),
		CatalogTopic:       getEnv("CATALOG_TOPIC", "catalog-events"),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second, &errs),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
		MaxRequestBodySize: getInt64("MAX_REQUEST_BODY", 1<<20, &errs),
		CartIdleTTL:        getDuration("CART_IDLE_TTL", 24*time.Hour, &errs),
		TaxRate:            getDecimal("TAX_RATE", "0.08", &errs),
		SeedDefaults:       getBool("SEED_DEFAULTS", true, &errs),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.StoreBackend {
	case BackendMongo, BackendFile:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMongo, BackendFile, cfg.StoreBackend))
	}
	if cfg.TaxRate.IsNegative() {
		errs = append(errs, errors.New("TAX_RATE must not be negative"))
	}
	if cfg.MaxRequestBodySize <= 0 {
		errs = append(errs, errors.New("MAX_REQUEST_BODY must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func getInt64(key string, defaultValue int64, errs *[]error) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool, errs *[]error) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return b
}

func getDecimal(key, defaultValue string, errs *[]error) decimal.Decimal {
	d, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return decimal.RequireFromString(defaultValue)
	}
	return d
}
