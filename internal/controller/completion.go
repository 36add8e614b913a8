package controller

import (
	"context"
	"fmt"

	"github.com/shaobosong/gdb-fzf/internal/config"
	"github.com/shaobosong/gdb-fzf/internal/logger"
	"github.com/shaobosong/gdb-fzf/internal/picker"
	"github.com/shaobosong/gdb-fzf/internal/timing"
	"github.com/shaobosong/gdb-fzf/internal/trace"
)

// Action tells the completion hook what to hand back to readline
type Action int

const (
	// Fallthrough yields the attempt to the host's native behavior
	Fallthrough Action = iota
	// Replace substitutes the token with the returned replacement
	Replace
	// None consumes the attempt and leaves the buffer byte-for-byte
	// as it was
	None
)

// Completion wraps the host's native completion mechanism. The host
// produces the match set; this controller decides deterministically
// how far the token can be extended and only then hands the leftover
// ambiguity to the finder.
type Completion struct {
	finder Finder
	cfg    *config.Snapshot
	log    *logger.Logger
}

// NewCompletion creates the completion controller
func NewCompletion(finder Finder, cfg *config.Snapshot, log *logger.Logger) *Completion {
	return &Completion{finder: finder, cfg: cfg, log: log}
}

// Complete resolves one completion attempt.
//
// token is the partial word being completed, linePrefix is the buffer
// text before the token (used for the finder prompt), and matches are
// the host's native completion results for the token.
//
// Fallthrough means the host's default behavior should take over
// (zero matches). Replace carries the new token text. None means the
// attempt produced nothing and the buffer must not change at all —
// cancelling the picker is not a commit, even of the token itself,
// because committing a match makes readline re-insert it and append
// its completion suffix. A prefix extension applied in an earlier
// attempt is already in the buffer and therefore stays.
func (c *Completion) Complete(ctx context.Context, token, linePrefix string, matches []string) (replacement string, action Action, err error) {
	defer trace.Region(ctx, "completion")()
	timer := timing.NewTimer()

	switch len(matches) {
	case 0:
		return "", Fallthrough, nil
	case 1:
		return matches[0], Replace, nil
	}

	if c.cfg.Completion.LCP {
		if lcp := LongestCommonPrefix(matches); len(lcp) > len(token) {
			// Deterministic stage: commit the shared prefix and stop.
			// The picker only runs when a further attempt still finds
			// ambiguity.
			return lcp, Replace, nil
		}
	}

	items := matches
	args, err := c.cfg.FinderArgs()
	if err != nil {
		reportError(c.log, "completion", err)
		return "", None, err
	}
	args = append(args, fmt.Sprintf("--prompt=%s> ", linePrefix))

	if c.cfg.Completion.LastFieldOnly && linePrefix != "" {
		// Present full command lines but match, display and emit only
		// the field being completed.
		items = make([]string, len(matches))
		for i, m := range matches {
			items[i] = linePrefix + m
		}
		args = append(args,
			"--delimiter= ",
			"--nth=-1",
			"--with-nth=-1",
			"--accept-nth=-1",
		)
	}

	result, err := c.finder.Run(ctx, picker.Request{Items: items, Args: args})
	timer.Mark("picker")
	if err != nil {
		reportError(c.log, "completion", err)
		return "", None, err
	}

	c.log.Debug().
		Int("matches", len(matches)).
		Dur("total", timer.Elapsed()).
		Msg("completion done")

	switch result.Kind {
	case picker.Selected, picker.Queried:
		return result.Text, Replace, nil
	default:
		return "", None, nil
	}
}
