//go:build linux || darwin

package readline

import "github.com/ebitengine/purego"

// NewCompletionCallback wraps handler in readline's attempted
// completion convention, char **(*)(const char *text, int start, int
// end). handler receives the token text and its [start, end) range in
// the line buffer and returns a raw char** match list, 0 for none.
// The returned pointer lives for the rest of the process.
func NewCompletionCallback(handler func(text string, start, end int) uintptr) uintptr {
	return purego.NewCallback(func(text uintptr, start, end int32) uintptr {
		return handler(goString(text), int(start), int(end))
	})
}
