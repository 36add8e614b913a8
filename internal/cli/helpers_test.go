package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "gdb-fzf", "commands.json"), CachePath())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "fzf", cfg.Finder.Command)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("gdb:\n  path: /opt/gdb\n"), 0644))

	cfg, resolved, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "/opt/gdb", cfg.GDB.Path)
}

func TestLoadConfig_DiscoversConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "gdb-fzf")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("log_level: debug\n"), 0644))

	cfg, resolved, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), resolved)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestGDBPath_Override(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, _, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gdb", gdbPath(cfg, ""))
	assert.Equal(t, "/usr/local/bin/gdb", gdbPath(cfg, "/usr/local/bin/gdb"))
}

func TestInit_CreatesSampleConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, Init())

	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "gdb-fzf", "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "gdb-fzf configuration")

	// A second init refuses to clobber the existing file
	require.Error(t, Init())
}
