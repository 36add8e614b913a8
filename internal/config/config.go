// Package config handles loading and parsing of gdb-fzf configuration
// files. A Snapshot is read once per interaction and passed to the
// controllers explicitly; nothing reads configuration from ambient
// state mid-interaction.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

// SupportedConfigNames contains supported configuration file names (in
// order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// GDBConfig selects the host binary
type GDBConfig struct {
	Path string `koanf:"path"`
}

// FinderConfig describes how the external finder is spawned
type FinderConfig struct {
	Command string `koanf:"command"`
	// Args replaces the default finder argument list entirely
	Args []string `koanf:"args"`
	// ExtraArgs is appended after Args, split with shell word rules
	ExtraArgs string `koanf:"extra_args"`
}

// PreviewConfig controls per-candidate help previews
type PreviewConfig struct {
	Enabled bool `koanf:"enabled"`
	// Template renders the finder's preview command; see the
	// candidates package for the available fields and functions
	Template string `koanf:"template"`
	// Pager shows the full help view on demand
	Pager string `koanf:"pager"`
}

// CompletionConfig controls the Tab-completion override
type CompletionConfig struct {
	// LCP extends the token to the longest common prefix before the
	// picker takes over
	LCP bool `koanf:"lcp"`
	// LastFieldOnly restricts finder matching and output to the
	// candidate's last whitespace-separated field
	LastFieldOnly bool `koanf:"last_field_only"`
}

// KeysConfig holds the readline key sequences for the two search
// triggers
type KeysConfig struct {
	History string `koanf:"history"`
	Command string `koanf:"command"`
}

// Snapshot is an immutable view of the configuration, constructed
// once and handed to each controller
type Snapshot struct {
	LogLevel   string           `koanf:"log_level"`
	GDB        GDBConfig        `koanf:"gdb"`
	Finder     FinderConfig     `koanf:"finder"`
	Preview    PreviewConfig    `koanf:"preview"`
	Completion CompletionConfig `koanf:"completion"`
	Keys       KeysConfig       `koanf:"keys"`
}

// Default returns the built-in configuration
func Default() *Snapshot {
	return &Snapshot{
		LogLevel: "warn",
		GDB:      GDBConfig{Path: "gdb"},
		Finder: FinderConfig{
			Command: "fzf",
			Args: []string{
				"--bind=tab:down,btab:up",
				"--cycle",
				"--height=40%",
				"--layout=reverse",
				"--tiebreak=index",
			},
		},
		Preview: PreviewConfig{
			Enabled:  true,
			Template: "{{ .Helper }} preview {}",
			Pager:    "less -R",
		},
		Completion: CompletionConfig{
			LCP:           false,
			LastFieldOnly: true,
		},
		Keys: KeysConfig{
			History: `\C-r`,
			Command: `\ec`,
		},
	}
}

// FinderArgs returns the complete finder argument list: the configured
// base args plus extra_args split with shell word rules
func (s *Snapshot) FinderArgs() ([]string, error) {
	args := append([]string(nil), s.Finder.Args...)
	if s.Finder.ExtraArgs == "" {
		return args, nil
	}
	extra, err := shlex.Split(s.Finder.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid finder.extra_args: %w", err)
	}
	return append(args, extra...), nil
}

// ConfigDir returns the gdb-fzf configuration directory
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gdb-fzf")
}

// FindConfig returns the path of the first existing config file in
// the config directory, or "" when none exists
func FindConfig(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the config file at path on top of the defaults. An empty
// path yields the defaults unchanged.
func Load(path string) (*Snapshot, error) {
	snapshot := Default()
	if path == "" {
		return snapshot, nil
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, ferrors.NewConfigurationError(path, "failed to load config", err)
	}
	if err := k.Unmarshal("", snapshot); err != nil {
		return nil, ferrors.NewConfigurationError(path, "failed to parse config", err)
	}
	return snapshot, nil
}

// LoadBytes parses raw config content in the given format ("yml",
// "toml" or "json") on top of the defaults
func LoadBytes(data []byte, format string) (*Snapshot, error) {
	parser, err := parserFor("config." + format)
	if err != nil {
		return nil, err
	}

	snapshot := Default()
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, ferrors.NewConfigurationError("", "failed to load config", err)
	}
	if err := k.Unmarshal("", snapshot); err != nil {
		return nil, ferrors.NewConfigurationError("", "failed to parse config", err)
	}
	return snapshot, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
}
