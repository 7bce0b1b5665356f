package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vadimgribanov.com/memory-mcp/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Memory Manager", cfg.ServerName)
	assert.Equal(t, "data/memories.db", cfg.DatabasePath)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config", "application.yaml"),
		[]byte("server_name: \"Test Server\"\ndatabase_path: \"/tmp/test.db\"\n"),
		0644,
	))

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Test Server", cfg.ServerName)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	// Unset keys keep their defaults.
	assert.Equal(t, "0.1.0", cfg.ServerVersion)
}
