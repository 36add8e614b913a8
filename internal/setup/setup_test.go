package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gdb-fzf.so")
	require.NoError(t, os.WriteFile(path, []byte("so"), 0755))
	return path
}

func TestInstallHook_NewFile(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	plugin := writePlugin(t)

	result, err := InstallHook(initFile, plugin)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(initFile)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, HookMarkerStart)
	assert.Contains(t, content, HookMarkerEnd)
	assert.Contains(t, content, plugin)
	assert.Contains(t, content, "gdb_fzf_init")
}

func TestInstallHook_PreservesExistingContent(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	require.NoError(t, os.WriteFile(initFile, []byte("set history save on\n"), 0644))
	plugin := writePlugin(t)

	result, err := InstallHook(initFile, plugin)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(initFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "set history save on\n"))
	assert.Contains(t, string(data), HookMarkerStart)
}

func TestInstallHook_Idempotent(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	plugin := writePlugin(t)

	_, err := InstallHook(initFile, plugin)
	require.NoError(t, err)
	first, err := os.ReadFile(initFile)
	require.NoError(t, err)

	result, err := InstallHook(initFile, plugin)
	require.NoError(t, err)
	assert.False(t, result.Updated)

	second, err := os.ReadFile(initFile)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestInstallHook_UpdatesChangedPluginPath(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	oldPlugin := writePlugin(t)
	newPlugin := writePlugin(t)

	_, err := InstallHook(initFile, oldPlugin)
	require.NoError(t, err)

	result, err := InstallHook(initFile, newPlugin)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(initFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), newPlugin)
	assert.NotContains(t, string(data), oldPlugin)
	assert.Equal(t, 1, strings.Count(string(data), HookMarkerStart), "blocks never stack")
}

func TestInstallHook_MissingPlugin(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	_, err := InstallHook(initFile, filepath.Join(t.TempDir(), "nope.so"))
	require.Error(t, err)
	_, statErr := os.Stat(initFile)
	assert.True(t, os.IsNotExist(statErr), "gdbinit is not touched on failure")
}

func TestIsHookInstalled(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	assert.False(t, IsHookInstalled(initFile))

	plugin := writePlugin(t)
	_, err := InstallHook(initFile, plugin)
	require.NoError(t, err)
	assert.True(t, IsHookInstalled(initFile))
}

func TestUninstallHook(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	require.NoError(t, os.WriteFile(initFile, []byte("set pagination off\n"), 0644))
	plugin := writePlugin(t)

	_, err := InstallHook(initFile, plugin)
	require.NoError(t, err)

	result, err := UninstallHook(initFile)
	require.NoError(t, err)
	assert.True(t, result.Updated)

	data, err := os.ReadFile(initFile)
	require.NoError(t, err)
	assert.Equal(t, "set pagination off\n", string(data))
}

func TestUninstallHook_NothingInstalled(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), ".gdbinit")
	require.NoError(t, os.WriteFile(initFile, []byte("set pagination off\n"), 0644))

	result, err := UninstallHook(initFile)
	require.NoError(t, err)
	assert.False(t, result.Updated)
}

func TestUninstallHook_MissingFile(t *testing.T) {
	result, err := UninstallHook(filepath.Join(t.TempDir(), ".gdbinit"))
	require.NoError(t, err)
	assert.False(t, result.Updated)
}

func TestRemoveMarkedSection(t *testing.T) {
	content := "before\n" + HookMarkerStart + "\nstuff\n" + HookMarkerEnd + "\nafter\n"
	got := removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
	assert.Equal(t, "before\nafter\n", got)
}

func TestGDBInitPath_XDGPreferred(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "gdb"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "gdb", "gdbinit"), nil, 0644))
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := GDBInitPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "gdb", "gdbinit"), path)
}

func TestGDBInitPath_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // exists but has no gdb/gdbinit

	path, err := GDBInitPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".gdbinit"))
}
