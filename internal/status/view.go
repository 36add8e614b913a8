package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gdb-fzf ") + valueStyle.Render(data.Version) + "\n\n")
	b.WriteString(renderInstallInfo(data))
	b.WriteString("\n")
	b.WriteString(renderToolInfo(data))
	b.WriteString("\n")
	b.WriteString(renderConfigInfo(data))
	b.WriteString("\n")
	b.WriteString(renderCacheInfo(data))

	return b.String()
}

func renderInstallInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Installation:") + "\n")

	if data.HookInstalled {
		b.WriteString("   " + keyStyle.Render("Hook: ") + successStyle.Render("✓ Installed") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("Hook: ") + errorStyle.Render("✗ Not installed") + "\n")
		b.WriteString("   " + warningStyle.Render("Run 'gdb-fzf setup' to install") + "\n")
	}
	if data.InitFile != "" {
		b.WriteString("   " + keyStyle.Render("Init file: ") + subtleStyle.Render(data.InitFile) + "\n")
	}
	if data.PluginPath != "" {
		mark := successStyle.Render("✓")
		if !data.PluginExists {
			mark = errorStyle.Render("✗ missing")
		}
		b.WriteString("   " + keyStyle.Render("Plugin: ") + subtleStyle.Render(data.PluginPath) + " " + mark + "\n")
	}

	return b.String()
}

func renderToolInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Tools:") + "\n")

	if data.GDBFound {
		b.WriteString("   " + keyStyle.Render("gdb: ") + successStyle.Render("✓ ") + valueStyle.Render(data.GDBResolved) + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("gdb: ") + errorStyle.Render(fmt.Sprintf("✗ %s not found in PATH", data.GDBPath)) + "\n")
	}

	if data.FinderFound {
		b.WriteString("   " + keyStyle.Render("finder: ") + successStyle.Render("✓ ") + valueStyle.Render(data.FinderCmd) + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("finder: ") + errorStyle.Render(fmt.Sprintf("✗ %s not found in PATH", data.FinderCmd)) + "\n")
	}

	if data.PagerCmd != "" {
		b.WriteString("   " + keyStyle.Render("pager: ") + valueStyle.Render(data.PagerCmd) + "\n")
	}

	return b.String()
}

func renderConfigInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Configuration:") + "\n")

	if data.ConfigSource == "file" {
		b.WriteString("   " + keyStyle.Render("Source: ") + valueStyle.Render(data.ConfigPath) + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("Source: ") + subtleStyle.Render("built-in defaults") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("History key: ") + valueStyle.Render(data.HistoryKey) + "\n")
	b.WriteString("   " + keyStyle.Render("Command key: ") + valueStyle.Render(data.CommandKey) + "\n")
	b.WriteString("   " + keyStyle.Render("Preview: ") + renderToggle(data.PreviewOn) + "\n")
	b.WriteString("   " + keyStyle.Render("Prefix completion: ") + renderToggle(data.LCPOn) + "\n")

	return b.String()
}

func renderCacheInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Command cache:") + "\n")

	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(data.CachePath) + "\n")

	if data.CacheTotalEntries == 0 {
		b.WriteString("   " + subtleStyle.Render("Empty; populated on first command search") + "\n")
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(humanize.Bytes(uint64(data.CacheFileSize))) + "\n")
	b.WriteString("   " + keyStyle.Render("Entries: ") + valueStyle.Render(fmt.Sprintf("%d", data.CacheTotalEntries)) + "\n")

	if data.CacheCommands > 0 {
		b.WriteString("   " + keyStyle.Render("Commands: ") + valueStyle.Render(fmt.Sprintf("%d", data.CacheCommands)) + "\n")
		b.WriteString("   " + keyStyle.Render("Updated: ") + subtleStyle.Render(humanize.Time(data.CacheUpdated)) + "\n")
	}

	if data.CacheValid {
		b.WriteString("   " + keyStyle.Render("State: ") + successStyle.Render("✓ Valid") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("State: ") + warningStyle.Render("Stale; refreshed on next use") + "\n")
	}

	return b.String()
}

func renderToggle(on bool) string {
	if on {
		return successStyle.Render("enabled")
	}
	return subtleStyle.Render("disabled")
}
