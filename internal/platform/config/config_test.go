package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inEmptyDir runs the test from a directory without a config.yaml.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "@every 1h", cfg.Session.SweepSchedule)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10, cfg.LLM.RateLimit)
	assert.Empty(t, cfg.CORS.AllowOrigins)
}

func TestLoad_Env(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("TEND_ENVIRONMENT", "production")
	t.Setenv("TEND_DATABASE_DRIVER", "sqlite")
	t.Setenv("TEND_REDIS_HOST", "cache")
	t.Setenv("TEND_SESSION_TTL", "24h")
	t.Setenv("TEND_LLM_TIMEOUT", "5s")
	t.Setenv("TEND_CORS_ALLOWORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
}

func TestLoad_File(t *testing.T) {
	dir := inEmptyDir(t)
	yaml := "http:\n  addr: \":9090\"\nllm:\n  model: gemini-test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("TEND_LLM_MODEL", "from-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "from-env", cfg.LLM.Model, "env wins over the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown driver", key: "TEND_DATABASE_DRIVER", val: "mysql"},
		{name: "zero ttl", key: "TEND_SESSION_TTL", val: "0s"},
		{name: "zero rate limit", key: "TEND_LLM_RATELIMIT", val: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inEmptyDir(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
