package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every ACADEMIA_ env var that Load() reads.
var allConfigKeys = []string{
	"ACADEMIA_CONFIG_FILE",
	"ACADEMIA_LISTEN_ADDR",
	"ACADEMIA_STORAGE",
	"ACADEMIA_DB_PATH",
	"ACADEMIA_REDIS_ADDR",
	"ACADEMIA_REDIS_PASSWORD",
	"ACADEMIA_REDIS_DB",
	"ACADEMIA_REDIS_PREFIX",
	"ACADEMIA_SESSION_KEY",
	"ACADEMIA_SESSION_TTL",
	"ACADEMIA_PROVIDER_MIN_DELAY",
	"ACADEMIA_PROVIDER_MAX_DELAY",
	"ACADEMIA_TRANSLATION_DELAY",
	"ACADEMIA_RATE_LIMIT",
	"ACADEMIA_RATE_BURST",
	"ACADEMIA_LOG_LEVEL",
}

// isolateConfigEnv saves and unsets all ACADEMIA_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "academia.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.SessionKey)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.ProviderMinDelay)
	assert.Equal(t, 3*time.Second, cfg.ProviderMaxDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.TranslationDelay)
	assert.InDelta(t, 5.0, cfg.RateLimit, 0.0001)
	assert.Equal(t, 20, cfg.RateBurst)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ACADEMIA_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("ACADEMIA_STORAGE", "Redis")
	t.Setenv("ACADEMIA_REDIS_ADDR", "cache:6379")
	t.Setenv("ACADEMIA_REDIS_PREFIX", "staging:")
	t.Setenv("ACADEMIA_SESSION_TTL", "30m")
	t.Setenv("ACADEMIA_PROVIDER_MIN_DELAY", "0s")
	t.Setenv("ACADEMIA_PROVIDER_MAX_DELAY", "100ms")
	t.Setenv("ACADEMIA_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, "staging:", cfg.RedisPrefix)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Duration(0), cfg.ProviderMinDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.ProviderMaxDelay)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "unknown storage",
			env:  map[string]string{"ACADEMIA_STORAGE": "postgres"},
			want: "ACADEMIA_STORAGE",
		},
		{
			name: "inverted delay range",
			env:  map[string]string{"ACADEMIA_PROVIDER_MIN_DELAY": "5s", "ACADEMIA_PROVIDER_MAX_DELAY": "1s"},
			want: "provider delay range",
		},
		{
			name: "zero rate limit",
			env:  map[string]string{"ACADEMIA_RATE_LIMIT": "0"},
			want: "rate limit",
		},
		{
			name: "bad log level",
			env:  map[string]string{"ACADEMIA_LOG_LEVEL": "loud"},
			want: "ACADEMIA_LOG_LEVEL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("ACADEMIA_SESSION_TTL", "forever")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolateConfigEnv(t)

	path := filepath.Join(t.TempDir(), "academia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: memory\nlisten_addr: 127.0.0.1:7000\n"), 0o600))
	t.Setenv("ACADEMIA_CONFIG_FILE", path)
	t.Setenv("ACADEMIA_LISTEN_ADDR", "127.0.0.1:7001")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "127.0.0.1:7001", cfg.ListenAddr, "environment overrides the file")
	assert.Equal(t, "academia.db", cfg.DBPath)
}
