// Package status provides status information collection and display
// for gdb-fzf.
package status

import (
	"os"
	"os/exec"
	"strings"

	"github.com/shaobosong/gdb-fzf/internal/cache"
	"github.com/shaobosong/gdb-fzf/internal/config"
	"github.com/shaobosong/gdb-fzf/internal/setup"
	"github.com/shaobosong/gdb-fzf/pkg/version"
)

// CollectAll gathers diagnostic information: tool availability,
// installation state, effective configuration, and cache health
func CollectAll(cfg *config.Snapshot, configPath, cachePath, pluginPath string) (*Data, error) {
	data := &Data{
		Version:      version.Version,
		PluginPath:   pluginPath,
		ConfigPath:   configPath,
		ConfigSource: "defaults",
		CachePath:    cachePath,
		GDBPath:      cfg.GDB.Path,
		FinderCmd:    cfg.Finder.Command,
		PagerCmd:     cfg.Preview.Pager,
		HistoryKey:   cfg.Keys.History,
		CommandKey:   cfg.Keys.Command,
		PreviewOn:    cfg.Preview.Enabled,
		LCPOn:        cfg.Completion.LCP,
	}

	if configPath != "" {
		data.ConfigSource = "file"
	}

	collectInstallInfo(data)
	collectToolInfo(data, cfg)
	collectCacheInfo(data, cfg)

	return data, nil
}

func collectInstallInfo(data *Data) {
	initFile, err := setup.GDBInitPath()
	if err != nil {
		return
	}
	data.InitFile = initFile
	data.HookInstalled = setup.IsHookInstalled(initFile)

	if data.PluginPath != "" {
		_, statErr := os.Stat(data.PluginPath)
		data.PluginExists = statErr == nil
	}
}

func collectToolInfo(data *Data, cfg *config.Snapshot) {
	if resolved, err := exec.LookPath(cfg.GDB.Path); err == nil {
		data.GDBFound = true
		data.GDBResolved = resolved
	}

	// Only the command word decides whether the finder can spawn
	finderBin := cfg.Finder.Command
	if fields := strings.Fields(finderBin); len(fields) > 0 {
		finderBin = fields[0]
	}
	if _, err := exec.LookPath(finderBin); err == nil {
		data.FinderFound = true
	}
}

func collectCacheInfo(data *Data, cfg *config.Snapshot) {
	info, err := cache.GetCacheInfo(data.CachePath)
	if err != nil {
		return
	}
	data.CacheFileSize = info.Size
	data.CacheTotalEntries = info.TotalEntries

	c, err := cache.New(data.CachePath)
	if err != nil {
		return
	}
	data.CacheValid = c.IsValid(cfg.GDB.Path, version.Version)
	if entry, found := c.Get(cfg.GDB.Path); found {
		data.CacheCommands = len(entry.Commands)
		data.CacheUpdated = entry.Timestamp
	}
}
