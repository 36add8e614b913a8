// Package picker spawns the external finder and exchanges candidate
// lists and selections with it over a NUL-delimited protocol.
// Candidate and preview texts may legitimately contain newlines, so
// newline framing would be ambiguous; a NUL byte cannot appear in any
// legitimate candidate.
package picker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
	"github.com/shaobosong/gdb-fzf/internal/logger"
)

// Kind classifies the outcome of one finder invocation
type Kind int

// Exactly one of these is produced per invocation
const (
	// Selected means the user accepted an existing candidate
	Selected Kind = iota
	// Queried means the user pressed enter on a query that matched no
	// candidate exactly; Text carries the query itself
	Queried
	// Cancelled means the user aborted; the buffer must stay untouched
	Cancelled
)

// Result is the parsed outcome of a finder run
type Result struct {
	Kind Kind
	Text string
}

// Request describes one finder invocation
type Request struct {
	// Items is the candidate list, streamed NUL-delimited to stdin
	Items []string
	// Query pre-fills the finder's query field
	Query string
	// Args is the full finder argument list before the protocol flags
	Args []string
	// Preview, when non-empty, is passed as the finder's preview
	// command
	Preview string
}

// protocolArgs are always appended so that framing and output parsing
// stay unambiguous regardless of user-configured arguments
var protocolArgs = []string{"--read0", "--print0", "--print-query", "--no-multi"}

// Picker runs the external finder process
type Picker struct {
	// Command is the finder executable
	Command string

	log *logger.Logger

	// execute is the spawn seam, overridable in tests. It returns the
	// finder's stdout and its exit error, if any.
	execute func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)
}

// New creates a picker for the given finder executable
func New(command string, log *logger.Logger) *Picker {
	return &Picker{
		Command: command,
		log:     log,
		execute: defaultExecute,
	}
}

func defaultExecute(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	// The finder draws its UI on the terminal directly; only the
	// final query/selection arrives on stdout.
	cmd.Stderr = os.Stderr
	return cmd.Output()
}

// Run blocks until the finder exits and returns exactly one of
// Selected, Queried or Cancelled. No timeout is imposed: cancellation
// is user-driven and observed via the exit status.
func (p *Picker) Run(ctx context.Context, req Request) (Result, error) {
	args := append(append([]string(nil), req.Args...), protocolArgs...)
	args = append(args, "--query", req.Query)
	if req.Preview != "" {
		args = append(args, "--preview", req.Preview)
	}

	out, err := p.execute(ctx, p.Command, args, Encode(req.Items))
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is the finder's cancel convention
			p.log.Debug().Int("exit_code", exitErr.ExitCode()).Msg("finder cancelled")
			return Result{Kind: Cancelled}, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return Result{Kind: Cancelled}, ferrors.NewLaunchError(p.Command,
				"finder not found; install it or set finder.command in the gdb-fzf config", err)
		}
		return Result{Kind: Cancelled}, ferrors.NewLaunchError(p.Command, "failed to run finder", err)
	}

	query, selection, ok := Decode(out)
	if !ok {
		return Result{Kind: Cancelled}, ferrors.NewProtocolError(string(out), "malformed finder output")
	}

	if selection != "" {
		return Result{Kind: Selected, Text: selection}, nil
	}
	if query != "" {
		return Result{Kind: Queried, Text: query}, nil
	}
	return Result{Kind: Cancelled}, nil
}

// Encode frames candidate items for the finder's stdin: each item is
// terminated by a NUL byte. Items containing newlines survive intact.
func Encode(items []string) []byte {
	var b bytes.Buffer
	for _, item := range items {
		b.WriteString(item)
		b.WriteByte(0)
	}
	return b.Bytes()
}

// Decode parses the finder's NUL-delimited stdout. With --print-query
// the first field is the query; with --no-multi the selection, if
// any, is the single following field. ok is false when the output
// violates the framing.
func Decode(out []byte) (query, selection string, ok bool) {
	if len(out) == 0 {
		return "", "", false
	}
	if out[len(out)-1] != 0 {
		// Every field must be NUL-terminated
		return "", "", false
	}

	fields := bytes.Split(out[:len(out)-1], []byte{0})
	query = string(fields[0])
	if len(fields) > 1 {
		selection = string(fields[len(fields)-1])
	}
	return query, selection, true
}
