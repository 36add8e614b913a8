// Package setup installs the gdb-fzf plugin into the user's gdbinit
// file. The install is a marked block so repeated runs update in
// place and uninstall removes exactly what was added.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shaobosong/gdb-fzf/internal/ferrors"
)

const (
	// HookMarkerStart is the starting marker for the gdb-fzf block in gdbinit
	HookMarkerStart = "# gdb-fzf - START"
	// HookMarkerEnd is the ending marker for the gdb-fzf block in gdbinit
	HookMarkerEnd = "# gdb-fzf - END"
)

// Result represents the result of a setup operation
type Result struct {
	InitFile string
	Updated  bool
	Message  string
}

// GDBInitPath returns the user's gdbinit path, honoring XDG first the
// way recent GDB releases do
func GDBInitPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate := filepath.Join(xdg, "gdb", "gdbinit")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gdbinit"), nil
}

// hookBlock renders the marked block loading the plugin library into
// the host process and calling its entry point
func hookBlock(pluginPath string) string {
	return HookMarkerStart + "\n" +
		fmt.Sprintf("python import ctypes; ctypes.CDLL(%q).gdb_fzf_init()\n", pluginPath) +
		HookMarkerEnd + "\n"
}

// InstallHook installs or updates the gdb-fzf block in the user's
// gdbinit, creating the file when absent
func InstallHook(initFile, pluginPath string) (*Result, error) {
	if _, err := os.Stat(pluginPath); err != nil {
		return nil, ferrors.NewConfigurationError(pluginPath, "plugin library not found", err)
	}

	content := ""
	if data, err := os.ReadFile(initFile); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return nil, ferrors.NewConfigurationError(initFile, "failed to read gdbinit", err)
	}

	block := hookBlock(pluginPath)

	if containsMarkers(content, HookMarkerStart, HookMarkerEnd) {
		stripped := removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
		updated := joinSections(stripped, block)
		if updated == content {
			return &Result{InitFile: initFile, Updated: false, Message: "gdb-fzf hook already up to date"}, nil
		}
		if err := atomicWrite(initFile, updated); err != nil {
			return nil, err
		}
		return &Result{InitFile: initFile, Updated: true, Message: "gdb-fzf hook updated"}, nil
	}

	updated := joinSections(content, block)
	if err := atomicWrite(initFile, updated); err != nil {
		return nil, err
	}
	return &Result{InitFile: initFile, Updated: true, Message: "gdb-fzf hook installed"}, nil
}

// IsHookInstalled checks whether the gdb-fzf block is present
func IsHookInstalled(initFile string) bool {
	data, err := os.ReadFile(initFile)
	if err != nil {
		return false
	}
	return containsMarkers(string(data), HookMarkerStart, HookMarkerEnd)
}

// UninstallHook removes the gdb-fzf block. Removing from a file that
// never had one is not an error.
func UninstallHook(initFile string) (*Result, error) {
	data, err := os.ReadFile(initFile)
	if os.IsNotExist(err) {
		return &Result{InitFile: initFile, Updated: false, Message: "no gdbinit file, nothing to remove"}, nil
	}
	if err != nil {
		return nil, ferrors.NewConfigurationError(initFile, "failed to read gdbinit", err)
	}

	content := string(data)
	if !containsMarkers(content, HookMarkerStart, HookMarkerEnd) {
		return &Result{InitFile: initFile, Updated: false, Message: "gdb-fzf hook not installed"}, nil
	}

	stripped := removeMarkedSection(content, HookMarkerStart, HookMarkerEnd)
	if err := atomicWrite(initFile, stripped); err != nil {
		return nil, err
	}
	return &Result{InitFile: initFile, Updated: true, Message: "gdb-fzf hook removed"}, nil
}

// joinSections appends block after content with exactly one blank
// line between non-empty sections
func joinSections(content, block string) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return block
	}
	return content + "\n\n" + block
}

// atomicWrite replaces path via a rename so a crash mid-write never
// leaves a truncated gdbinit
func atomicWrite(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".gdbinit-*")
	if err != nil {
		return ferrors.NewConfigurationError(path, "failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ferrors.NewConfigurationError(path, "failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ferrors.NewConfigurationError(path, "failed to close temp file", err)
	}

	// Preserve existing permissions, default to 0644 for a new file
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return ferrors.NewConfigurationError(path, "failed to set permissions", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return ferrors.NewConfigurationError(path, "failed to replace gdbinit", err)
	}
	return nil
}
