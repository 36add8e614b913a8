package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shaobosong/gdb-fzf/internal/host"
)

// PreviewParams holds parameters for the Preview function
type PreviewParams struct {
	ConfigPath string
	GDBPath    string
	Command    string
}

// Preview prints the host's help text for one command. The finder
// invokes this for its preview pane, so output goes straight to
// stdout and failures degrade to a short notice instead of an error
// exit that would blank the pane.
func Preview(ctx context.Context, params PreviewParams) error {
	cfg, _, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	client := host.NewClient(gdbPath(cfg, params.GDBPath))
	text, err := client.Help(ctx, params.Command)
	if err != nil || strings.TrimSpace(text) == "" {
		fmt.Printf("No help available for %q\n", params.Command)
		return nil
	}

	fmt.Println(text)
	return nil
}

// HelpParams holds parameters for the Help function
type HelpParams struct {
	ConfigPath string
	GDBPath    string
	Command    string
}

// Help prints the host's full help text for one command. Unlike
// Preview, a lookup failure is a real error: this path feeds the
// pager binding, where silence would look like a hang.
func Help(ctx context.Context, params HelpParams) error {
	cfg, _, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	client := host.NewClient(gdbPath(cfg, params.GDBPath))
	text, err := client.Help(ctx, params.Command)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
