package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HEDGEWISE_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 90, cfg.SnapshotRetentionDays)
	assert.Equal(t, int64(512), cfg.CacheMaxEntries)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
	assert.Equal(t, filepath.Join(cfg.DataDir, "snapshots.db"), cfg.SnapshotDBPath())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HEDGEWISE_DATA_DIR", t.TempDir())
	t.Setenv("HEDGEWISE_PORT", "9090")
	t.Setenv("HEDGEWISE_LOG_LEVEL", "debug")
	t.Setenv("HEDGEWISE_DEV_MODE", "true")
	t.Setenv("HEDGEWISE_SNAPSHOT_RETENTION_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 30, cfg.SnapshotRetentionDays)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "HEDGEWISE_PORT", "70000"},
		{"zero retention", "HEDGEWISE_SNAPSHOT_RETENTION_DAYS", "0"},
		{"negative cache bound", "HEDGEWISE_CACHE_MAX_ENTRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HEDGEWISE_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
