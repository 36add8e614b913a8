package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shaobosong/gdb-fzf/internal/setup"
)

// SetupParams holds parameters for the Setup function
type SetupParams struct {
	PluginPath string
	Uninstall  bool
}

// Setup installs or removes the gdb-fzf block in the user's gdbinit
func Setup(params SetupParams) error {
	initFile, err := setup.GDBInitPath()
	if err != nil {
		return err
	}

	if params.Uninstall {
		result, err := setup.UninstallHook(initFile)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	}

	pluginPath := params.PluginPath
	if pluginPath == "" {
		pluginPath, err = defaultPluginPath()
		if err != nil {
			return err
		}
	}

	result, err := setup.InstallHook(initFile, pluginPath)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if result.Updated {
		fmt.Println("\nNext gdb session will pick it up; in a running one, execute:")
		fmt.Printf("  source %s\n", result.InitFile)
	}
	return nil
}

// defaultPluginPath looks for the plugin library next to the helper
// binary, which is where the release layout puts it
func defaultPluginPath() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate own binary: %w", err)
	}
	candidate := filepath.Join(filepath.Dir(self), "gdb-fzf.so")
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("plugin library not found at %s; pass --plugin", candidate)
	}
	return candidate, nil
}
