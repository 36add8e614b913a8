// Package controller orchestrates the three user-triggered
// interactions: history search, command search, and completion. Each
// trigger runs start-to-finish inside the host's single-threaded
// input loop; the only concurrency is the finder subprocess itself.
package controller

import (
	"context"
	"strings"
	"unicode"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
	"github.com/shaobosong/gdb-fzf/internal/logger"
	"github.com/shaobosong/gdb-fzf/internal/picker"
)

// Finder abstracts the external picker so controllers can be
// exercised without spawning a process. *picker.Picker satisfies it.
type Finder interface {
	Run(ctx context.Context, req picker.Request) (picker.Result, error)
}

// reportError logs an interaction failure with user-facing severity:
// launch and resolution problems are surfaced loudly, protocol noise
// stays at warn so it never interrupts a debugging session
func reportError(log *logger.Logger, interaction string, err error) {
	switch err.(type) {
	case *ferrors.LaunchError:
		log.Error().Str("interaction", interaction).Err(err).Msg("interaction failed")
	case *ferrors.ProtocolError:
		log.Warn().Str("interaction", interaction).Err(err).Msg("finder output discarded")
	default:
		log.Error().Str("interaction", interaction).Err(err).Msg("interaction failed")
	}
}

// tokenBounds returns the [start, end) byte range of the
// whitespace-delimited token containing point. On whitespace, the
// token is empty at point.
func tokenBounds(text string, point int) (start, end int) {
	if point > len(text) {
		point = len(text)
	}
	start = point
	for start > 0 && !unicode.IsSpace(rune(text[start-1])) {
		start--
	}
	end = point
	for end < len(text) && !unicode.IsSpace(rune(text[end])) {
		end++
	}
	return start, end
}

// replaceToken splices replacement over the token containing point
// and returns the new text plus the cursor position at the end of the
// replacement
func replaceToken(text string, point int, replacement string) (string, int) {
	start, end := tokenBounds(text, point)
	newText := text[:start] + replacement + text[end:]
	return newText, start + len(replacement)
}

// LongestCommonPrefix returns the maximal prefix shared by all items.
// It is idempotent: running it on its own result finds no further
// extension.
func LongestCommonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, item := range items[1:] {
		for !strings.HasPrefix(item, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}
