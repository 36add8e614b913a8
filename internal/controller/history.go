package controller

import (
	"context"

	"github.com/shaobosong/gdb-fzf/internal/candidates"
	"github.com/shaobosong/gdb-fzf/internal/config"
	"github.com/shaobosong/gdb-fzf/internal/logger"
	"github.com/shaobosong/gdb-fzf/internal/picker"
	"github.com/shaobosong/gdb-fzf/internal/readline"
	"github.com/shaobosong/gdb-fzf/internal/timing"
	"github.com/shaobosong/gdb-fzf/internal/trace"
)

// HistorySearch replaces readline's reverse-incremental-search with a
// fuzzy picker over the session history
type HistorySearch struct {
	bridge *readline.Bridge
	finder Finder
	cfg    *config.Snapshot
	log    *logger.Logger
}

// NewHistorySearch creates the history search controller
func NewHistorySearch(bridge *readline.Bridge, finder Finder, cfg *config.Snapshot, log *logger.Logger) *HistorySearch {
	return &HistorySearch{bridge: bridge, finder: finder, cfg: cfg, log: log}
}

// Trigger runs one history search interaction. On cancellation the
// buffer is left byte-for-byte as it was.
func (h *HistorySearch) Trigger(ctx context.Context) error {
	defer trace.Region(ctx, "history_search")()
	timer := timing.NewTimer()

	line := h.bridge.CurrentLine()
	list := candidates.History(h.bridge.History())
	timer.Mark("candidates")

	args, err := h.cfg.FinderArgs()
	if err != nil {
		reportError(h.log, "history", err)
		return err
	}

	result, err := h.finder.Run(ctx, picker.Request{
		Items: list.Items,
		Query: line.Text,
		Args:  args,
	})
	timer.Mark("picker")
	if err != nil {
		reportError(h.log, "history", err)
		h.bridge.ForceRedisplay()
		return err
	}

	switch result.Kind {
	case picker.Selected, picker.Queried:
		if err := h.bridge.SetLine(result.Text, -1); err != nil {
			reportError(h.log, "history", err)
			return err
		}
	case picker.Cancelled:
		h.bridge.ForceRedisplay()
	}

	h.log.Debug().
		Int("candidates", len(list.Items)).
		Dur("total", timer.Elapsed()).
		Msg("history search done")
	return nil
}
