package cli

import (
	"fmt"

	"github.com/shaobosong/gdb-fzf/internal/status"
)

// StatusParams holds parameters for the Status function
type StatusParams struct {
	ConfigPath string
	PluginPath string
}

// Status prints the diagnostics view: installation state, tool
// availability, effective configuration, and cache health
func Status(params StatusParams) error {
	cfg, resolvedPath, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	data, err := status.CollectAll(cfg, resolvedPath, CachePath(), params.PluginPath)
	if err != nil {
		return err
	}

	fmt.Println(status.Render(data))
	return nil
}
