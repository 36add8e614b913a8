// Package cli implements the gdb-fzf helper binary's subcommands.
// The binary serves two audiences: the finder, which re-enters it for
// previews, and the user, who runs setup and diagnostics from a shell.
package cli

import (
	"os"
	"path/filepath"

	"github.com/shaobosong/gdb-fzf/internal/config"
)

// CachePath returns the command-list cache location under XDG
func CachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "gdb-fzf", "commands.json")
}

// loadConfig resolves the effective configuration: an explicit path
// wins, otherwise the first config file in the config directory,
// otherwise built-in defaults. The resolved path is returned alongside
// the snapshot, "" when defaults were used.
func loadConfig(explicitPath string) (*config.Snapshot, string, error) {
	path := explicitPath
	if path == "" {
		path = config.FindConfig(config.ConfigDir())
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// gdbPath applies the --gdb flag over the configured host binary
func gdbPath(cfg *config.Snapshot, override string) string {
	if override != "" {
		return override
	}
	return cfg.GDB.Path
}
