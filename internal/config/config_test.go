package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "/api/v1", cfg.Server.BasePath)
	assert.Equal(t, 0.01, cfg.Scheduling.MinRawHours)
	assert.Equal(t, 1.0, cfg.Scheduling.MinActualDurationHours)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduling.OverduePickSweep)
}

func TestLoad_YamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
scheduling:
  min_actual_duration_hours: 0.5
notify:
  recipients:
    - "+15550100"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Scheduling.MinActualDurationHours)
	assert.Equal(t, []string{"+15550100"}, cfg.Notify.Recipients)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}
