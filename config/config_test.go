package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) string {
	t.Helper()
	secrets := t.TempDir()
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "pantrymatch")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	return secrets
}

func TestLoadConfig(t *testing.T) {
	t.Run("should load values from the environment", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("LLM_TIMEOUT", "15s")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "postgres", cfg.DBUser)
		assert.Equal(t, "postgres", cfg.DBPassword)
		assert.Equal(t, "pantrymatch", cfg.DBName)
		assert.Equal(t, "test-secret", cfg.JWTSecret)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.Equal(t, "configs/matching.yaml", cfg.MatchingConfigPath)
		assert.False(t, cfg.LLMEnabled())
	})

	t.Run("should prefer docker secrets over the environment", func(t *testing.T) {
		secrets := setTestEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_password"), []byte("from-secret\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(secrets, "llm_api_key"), []byte("sk-test"), 0o600))

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-secret", cfg.DBPassword)
		assert.True(t, cfg.LLMEnabled())
	})

	t.Run("should fail when required values are missing", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DB_HOST", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_secret: is required")
		assert.Contains(t, err.Error(), "db_host: is required")
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.DatabaseDSN())
}
