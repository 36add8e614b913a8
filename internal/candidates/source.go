// Package candidates enumerates the two candidate universes offered
// to the finder: session history and host command names.
package candidates

import (
	"context"
	"os"
	"time"

	"github.com/shaobosong/gdb-fzf/internal/cache"
	"github.com/shaobosong/gdb-fzf/internal/logger"
)

// List is an ordered sequence of opaque candidate texts. Order is
// meaningful and duplicates are permitted.
type List struct {
	Items []string
	// Preview is the finder preview command for the list, empty when
	// previews are disabled or not applicable
	Preview string
}

// History builds the history candidate list: most recent first,
// duplicates preserved so a repeated command reappears each time it
// was issued
func History(snapshot []string) List {
	items := make([]string, 0, len(snapshot))
	for i := len(snapshot) - 1; i >= 0; i-- {
		items = append(items, snapshot[i])
	}
	return List{Items: items}
}

// CommandLister enumerates the host's registered command names
type CommandLister interface {
	Commands(ctx context.Context) ([]string, error)
}

// Source produces the command candidate list, consulting the
// persistent cache before spawning a batch-mode host
type Source struct {
	host    CommandLister
	cache   *cache.Cache
	gdbPath string
	version string
	log     *logger.Logger
}

// NewSource creates a command candidate source. cache may be nil, in
// which case every call enumerates from the host.
func NewSource(host CommandLister, c *cache.Cache, gdbPath, version string, log *logger.Logger) *Source {
	return &Source{host: host, cache: c, gdbPath: gdbPath, version: version, log: log}
}

// Commands returns the flat, deduplicated command list in the host's
// registration order
func (s *Source) Commands(ctx context.Context) (List, error) {
	if s.cache != nil && s.cache.IsValid(s.gdbPath, s.version) {
		if entry, found := s.cache.Get(s.gdbPath); found {
			s.log.Debug().Int("commands", len(entry.Commands)).Msg("command list served from cache")
			return List{Items: entry.Commands}, nil
		}
	}

	commands, err := s.host.Commands(ctx)
	if err != nil {
		return List{}, err
	}

	if s.cache != nil {
		entry := &cache.Entry{
			GDBPath:   s.gdbPath,
			Commands:  commands,
			Timestamp: time.Now(),
			Version:   s.version,
		}
		if info, statErr := os.Stat(s.gdbPath); statErr == nil {
			entry.BinModTime = info.ModTime()
		}
		if err := s.cache.Set(entry); err != nil {
			// Cache persistence failure only costs the next spawn
			s.log.Warn().Err(err).Msg("failed to persist command cache")
		}
	}

	return List{Items: commands}, nil
}
