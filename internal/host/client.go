// Package host talks to GDB's command dispatch through its textual
// batch interface. The interactive GDB instance is blocked for the
// whole interaction, so every request here spawns a fresh batch-mode
// process instead of re-entering the running one.
package host

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// DefaultGDBPath is used when the configuration does not name the
// host binary explicitly
const DefaultGDBPath = "gdb"

// Client issues batch-mode requests against the host binary
type Client struct {
	// GDBPath is the host binary invoked with --nx --batch
	GDBPath string

	// run is the exec seam, overridable in tests
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewClient creates a batch client for the given host binary path
func NewClient(gdbPath string) *Client {
	if gdbPath == "" {
		gdbPath = DefaultGDBPath
	}
	return &Client{
		GDBPath: gdbPath,
		run:     defaultRun,
	}
}

func defaultRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	// Help output is wanted even when gdb exits non-zero, as long as
	// it produced something.
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil && len(out) == 0 {
		return nil, err
	}
	return out, nil
}

// Commands enumerates every command name the host knows, parsed from
// `help all` output: flat, deduplicated, first-seen order preserved
func (c *Client) Commands(ctx context.Context) ([]string, error) {
	out, err := c.execute(ctx, "help all")
	if err != nil {
		return nil, err
	}
	return parseHelpAll(string(out)), nil
}

// Help returns the host's help text for a single command
func (c *Client) Help(ctx context.Context, command string) (string, error) {
	out, err := c.execute(ctx, "help "+sanitizeRequest(command))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (c *Client) execute(ctx context.Context, request string) ([]byte, error) {
	out, err := c.run(ctx, c.GDBPath, "--nx", "--batch", "-ex", request)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ferrors.NewLaunchError(c.GDBPath,
				"host binary not found; set gdb.path in the gdb-fzf config", err)
		}
		return nil, ferrors.NewLaunchError(c.GDBPath, "host batch request failed", err)
	}
	return out, nil
}

// sanitizeRequest keeps a user-controlled command name from smuggling
// a second batch command into the -ex argument
func sanitizeRequest(command string) string {
	command = strings.ReplaceAll(command, "\n", " ")
	command = strings.ReplaceAll(command, "\r", " ")
	return strings.TrimSpace(command)
}

// parseHelpAll extracts command names from `help all` output. Lines
// look like "backtrace, where -- Print backtrace of all stack frames";
// class headers and blank lines carry no "--" and are skipped.
func parseHelpAll(output string) []string {
	seen := make(map[string]bool)
	var commands []string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "--") {
			continue
		}

		namePart := strings.SplitN(line, "--", 2)[0]
		for _, name := range strings.Split(namePart, ",") {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			commands = append(commands, name)
		}
	}

	return commands
}
