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

// CommandSearch offers a fuzzy picker over every command the host
// knows. The selection replaces the whitespace-delimited token under
// the cursor; with an empty buffer it is simply inserted. This
// token-replacement policy is deliberate: it lets a user swap the
// command word of a half-typed line without losing its arguments.
type CommandSearch struct {
	bridge *readline.Bridge
	source *candidates.Source
	finder Finder
	cfg    *config.Snapshot
	log    *logger.Logger

	// helperPath locates the gdb-fzf helper binary used as the
	// finder's preview command
	helperPath string
}

// NewCommandSearch creates the command search controller
func NewCommandSearch(bridge *readline.Bridge, source *candidates.Source, finder Finder, cfg *config.Snapshot, helperPath string, log *logger.Logger) *CommandSearch {
	return &CommandSearch{
		bridge:     bridge,
		source:     source,
		finder:     finder,
		cfg:        cfg,
		helperPath: helperPath,
		log:        log,
	}
}

// Trigger runs one command search interaction
func (c *CommandSearch) Trigger(ctx context.Context) error {
	defer trace.Region(ctx, "command_search")()
	timer := timing.NewTimer()

	line := c.bridge.CurrentLine()
	start, end := tokenBounds(line.Text, line.Point)
	token := line.Text[start:end]

	list, err := c.source.Commands(ctx)
	timer.Mark("candidates")
	if err != nil {
		reportError(c.log, "command", err)
		return err
	}

	args, err := c.cfg.FinderArgs()
	if err != nil {
		reportError(c.log, "command", err)
		return err
	}

	preview := ""
	if c.cfg.Preview.Enabled && c.helperPath != "" {
		preview, err = candidates.BuildPreviewCommand(c.cfg.Preview.Template, c.helperPath, c.cfg.GDB.Path)
		if err != nil {
			// A broken template only costs the preview pane
			c.log.Warn().Err(err).Msg("preview disabled")
			preview = ""
		} else if c.cfg.Preview.Pager != "" {
			args = append(args, "--bind", candidates.BuildPagerBinding(c.helperPath, c.cfg.GDB.Path, c.cfg.Preview.Pager))
		}
	}

	result, err := c.finder.Run(ctx, picker.Request{
		Items:   list.Items,
		Query:   token,
		Args:    args,
		Preview: preview,
	})
	timer.Mark("picker")
	if err != nil {
		reportError(c.log, "command", err)
		c.bridge.ForceRedisplay()
		return err
	}

	switch result.Kind {
	case picker.Selected, picker.Queried:
		newText, newPoint := replaceToken(line.Text, line.Point, result.Text)
		if err := c.bridge.SetLine(newText, newPoint); err != nil {
			reportError(c.log, "command", err)
			return err
		}
	case picker.Cancelled:
		c.bridge.ForceRedisplay()
	}

	c.log.Debug().
		Int("candidates", len(list.Items)).
		Bool("preview", preview != "").
		Dur("total", timer.Elapsed()).
		Msg("command search done")
	return nil
}
