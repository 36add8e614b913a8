package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shaobosong/gdb-fzf/internal/config"
)

const sampleConfig = `# gdb-fzf configuration
# Remove or adjust entries; absent keys keep their defaults.

# log_level: warn

# gdb:
#   path: gdb

# finder:
#   command: fzf
#   extra_args: "--color=dark"

# preview:
#   enabled: true
#   pager: less -R

# completion:
#   # Extend the token to the longest common prefix before opening
#   # the picker
#   lcp: false
#   last_field_only: true

# keys:
#   history: '\C-r'
#   command: '\ec'
`

// Init creates a sample configuration file in the config directory
func Init() error {
	dir := config.ConfigDir()
	if existing := config.FindConfig(dir); existing != "" {
		return fmt.Errorf("config file already exists: %s", existing)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✓ Created %s\n", path)
	return nil
}
