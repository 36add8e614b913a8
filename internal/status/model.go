package status

import "time"

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string

	// Installation
	InitFile      string
	HookInstalled bool
	PluginPath    string
	PluginExists  bool

	// Tools
	GDBPath     string
	GDBFound    bool
	GDBResolved string
	FinderCmd   string
	FinderFound bool
	PagerCmd    string

	// Configuration
	ConfigPath   string
	ConfigSource string // "file" or "defaults"
	HistoryKey   string
	CommandKey   string
	PreviewOn    bool
	LCPOn        bool

	// Cache
	CachePath         string
	CacheFileSize     int64
	CacheTotalEntries int
	CacheValid        bool
	CacheCommands     int
	CacheUpdated      time.Time
}
