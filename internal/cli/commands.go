package cli

import (
	"context"
	"fmt"

	"github.com/shaobosong/gdb-fzf/internal/cache"
	"github.com/shaobosong/gdb-fzf/internal/candidates"
	"github.com/shaobosong/gdb-fzf/internal/host"
	"github.com/shaobosong/gdb-fzf/internal/logger"
	"github.com/shaobosong/gdb-fzf/pkg/version"
)

// CommandsParams holds parameters for the Commands function
type CommandsParams struct {
	ConfigPath string
	GDBPath    string
	LogLevel   string
	NoCache    bool
}

// Commands prints the host's command list, one per line, in the
// host's registration order. This is what the search picker sees.
func Commands(ctx context.Context, params CommandsParams) error {
	cfg, _, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}
	log := logger.New(params.LogLevel, nil)

	path := gdbPath(cfg, params.GDBPath)
	client := host.NewClient(path)

	var c *cache.Cache
	if !params.NoCache {
		if c, err = cache.New(CachePath()); err != nil {
			log.Warn().Err(err).Msg("command cache unavailable")
			c = nil
		}
	}

	source := candidates.NewSource(client, c, path, version.Version, log)
	list, err := source.Commands(ctx)
	if err != nil {
		return err
	}

	for _, name := range list.Items {
		fmt.Println(name)
	}
	return nil
}
