// Package main is the entry point for the gdb-fzf helper binary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	gfcli "github.com/shaobosong/gdb-fzf/internal/cli"
	"github.com/shaobosong/gdb-fzf/internal/trace"
	"github.com/shaobosong/gdb-fzf/pkg/version"
)

func main() {
	stopTrace := trace.Init()

	app := &cli.Command{
		Name:                  "gdb-fzf",
		Usage:                 "Fuzzy history search, command search and completion for GDB",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("GDB_FZF_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Configuration file path",
				Sources: cli.EnvVars("GDB_FZF_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "gdb",
				Usage: "GDB binary to query, overriding the configured one",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "preview",
				Usage:     "Print help text for a command (finder preview pane)",
				ArgsUsage: "<command>",
				Hidden:    true, // Used internally by the finder's --preview
				HideHelp:  true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("command name required")
					}
					return gfcli.Preview(ctx, gfcli.PreviewParams{
						ConfigPath: cmd.String("config"),
						GDBPath:    cmd.String("gdb"),
						Command:    cmd.Args().First(),
					})
				},
			},
			{
				Name:      "help",
				Usage:     "Print full help text for a command",
				ArgsUsage: "<command>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("command name required")
					}
					return gfcli.Help(ctx, gfcli.HelpParams{
						ConfigPath: cmd.String("config"),
						GDBPath:    cmd.String("gdb"),
						Command:    cmd.Args().First(),
					})
				},
			},
			{
				Name:  "commands",
				Usage: "List every command the host GDB knows",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Enumerate from the host even when a valid cache exists",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return gfcli.Commands(ctx, gfcli.CommandsParams{
						ConfigPath: cmd.String("config"),
						GDBPath:    cmd.String("gdb"),
						LogLevel:   cmd.String("log-level"),
						NoCache:    cmd.Bool("no-cache"),
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show installation and configuration status",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "plugin",
						Usage: "Plugin library path to check",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return gfcli.Status(gfcli.StatusParams{
						ConfigPath: cmd.String("config"),
						PluginPath: cmd.String("plugin"),
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample configuration file",
				Action: func(_ context.Context, _ *cli.Command) error {
					return gfcli.Init()
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a gdb-fzf configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().First()
					}
					return gfcli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the configuration JSON Schema",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().First()
					}
					return gfcli.Schema(outputPath)
				},
			},
			{
				Name:  "setup",
				Usage: "Install or uninstall the gdbinit hook",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "plugin",
						Usage: "Plugin library path (defaults to gdb-fzf.so next to this binary)",
					},
					&cli.BoolFlag{
						Name:    "uninstall",
						Aliases: []string{"u"},
						Usage:   "Remove the gdbinit hook instead of installing it",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return gfcli.Setup(gfcli.SetupParams{
						PluginPath: cmd.String("plugin"),
						Uninstall:  cmd.Bool("uninstall"),
					})
				},
			},
			{
				Name:  "clean",
				Usage: "Clean command cache entries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "all",
						Aliases: []string{"a"},
						Usage:   "Clear all cache entries instead of the current host's",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return gfcli.Clean(gfcli.CleanParams{
						ConfigPath: cmd.String("config"),
						GDBPath:    cmd.String("gdb"),
						All:        cmd.Bool("all"),
					})
				},
			},
		},
	}

	err := app.Run(context.Background(), os.Args)
	stopTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
