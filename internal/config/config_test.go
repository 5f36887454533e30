package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "healthdata", cfg.Mongo.Database)
	assert.Equal(t, "models/model.json", cfg.Artifacts.ModelPath)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "project_name: Custom API\nserver:\n  port: 9001\nmongo:\n  database: other\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Custom API", cfg.ProjectName)
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "other", cfg.Mongo.Database)
	// untouched values fall back to defaults
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mongo:\n  database: fromfile\n"), 0o644))

	t.Setenv("MONGO_DB", "fromenv")
	t.Setenv("API_V1_PREFIX", "/v2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Mongo.Database)
	assert.Equal(t, "/v2", cfg.APIPrefix)
}
