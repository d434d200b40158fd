package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"HTTP_PORT", "STORE_BACKEND", "MONGO_URI", "MONGO_DB_NAME", "DATA_FILE",
	"REDIS_ADDR", "REDIS_PASSWORD", "SECTIONS_CACHE_TTL", "KAFKA_BROKERS",
	"CATALOG_TOPIC", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "MAX_REQUEST_BODY",
	"CART_IDLE_TTL", "TAX_RATE", "SEED_DEFAULTS", "LOG_LEVEL",
}

// clearEnv blanks every key for the test; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, "storefront", cfg.MongoDBName)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Minute, cfg.SectionsCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestBodySize)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.True(t, cfg.SeedDefaults)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CART_IDLE_TTL", "90m")
	t.Setenv("TAX_RATE", "0.2")
	t.Setenv("SEED_DEFAULTS", "false")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 90*time.Minute, cfg.CartIdleTTL)
	assert.Equal(t, "0.2", cfg.TaxRate.String())
	assert.False(t, cfg.SeedDefaults)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("HTTP_PORT")
	os.Unsetenv("REDIS_ADDR")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=9090\nREDIS_ADDR=localhost:6379\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("REDIS_ADDR")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("TAX_RATE", "-0.1")

	_, err := Load(noEnvFile(t))

	require.Error(t, err)
	assert.ErrorContains(t, err, "STORE_BACKEND")
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
	assert.ErrorContains(t, err, "TAX_RATE")
}
