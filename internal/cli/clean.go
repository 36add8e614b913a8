package cli

import (
	"fmt"

	"github.com/shaobosong/gdb-fzf/internal/cache"
)

// CleanParams holds parameters for the Clean function
type CleanParams struct {
	ConfigPath string
	GDBPath    string
	All        bool
}

// Clean removes command cache entries: the current host binary's
// entry by default, everything with --all
func Clean(params CleanParams) error {
	c, err := cache.New(CachePath())
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	if params.All {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("✓ All cache entries cleared")
		return nil
	}

	cfg, _, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	path := gdbPath(cfg, params.GDBPath)

	if err := c.Delete(path); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	fmt.Printf("✓ Cache cleared for %s\n", path)
	return nil
}
