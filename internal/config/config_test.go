package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PROJECTS_API_URL", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "http://localhost:8001", cfg.Projects.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Projects.Timeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_PostgresRequiresConnectionSettings(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "collab")
	t.Setenv("DB_USER", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestLoad_ParsesDurationsAndTrimsURL(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("PROJECTS_API_URL", "http://projects:8001/")
	t.Setenv("PROJECTS_API_TIMEOUT", "2s")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_TTL", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://projects:8001", cfg.Projects.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Projects.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
}
